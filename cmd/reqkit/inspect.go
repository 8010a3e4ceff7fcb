package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/reqkit/core/params"
	"github.com/dmitrymomot/reqkit/core/request"
	"github.com/dmitrymomot/reqkit/core/response"
)

type inspectOptions struct {
	vars           []string
	format         string
	readBody       bool
	trustedProxies []string
	noProxyHeaders bool
	maxBodySize    int64
}

func newInspectCmd() *cobra.Command {
	var opts inspectOptions

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the request view of a CGI invocation",
		Long: `Builds a request from CGI meta-variables and prints the derived view.

Without --var the process environment is used, so reqkit can run directly as
a CGI program. With --var only the given variables are visible:

  reqkit inspect -e REQUEST_METHOD=GET -e HTTP_HOST=example.com \
    -e PATH_INFO=/a/b -e QUERY_STRING=x=1 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&opts.vars, "var", "e", nil, "meta-variable as NAME=VALUE (repeatable)")
	f.StringVarP(&opts.format, "format", "o", "yaml", "output format: yaml or json")
	f.BoolVar(&opts.readBody, "body", false, "read the request body from standard input")
	f.StringSliceVar(&opts.trustedProxies, "trusted-proxy", nil, "IP or CIDR allowed to set proxy headers")
	f.BoolVar(&opts.noProxyHeaders, "no-proxy-headers", false, "ignore X-Forwarded-* and Client-IP headers")
	f.Int64Var(&opts.maxBodySize, "max-body-size", 0, "body size limit in bytes (default 4 MiB)")

	return cmd
}

func runInspect(in io.Reader, out io.Writer, opts inspectOptions) error {
	var env request.Env = request.ProcessEnv{}
	if len(opts.vars) > 0 {
		m := make(request.MapEnv, len(opts.vars))
		for _, kv := range opts.vars {
			name, value, ok := strings.Cut(kv, "=")
			if !ok || name == "" {
				return fmt.Errorf("invalid --var %q: expected NAME=VALUE", kv)
			}
			m[name] = value
		}
		env = m
	}

	var reqOpts []request.Option
	if len(opts.trustedProxies) > 0 {
		reqOpts = append(reqOpts, request.WithTrustedProxies(opts.trustedProxies...))
	}
	if opts.noProxyHeaders {
		reqOpts = append(reqOpts, request.WithoutProxyHeaders())
	}
	if opts.maxBodySize > 0 {
		reqOpts = append(reqOpts, request.WithMaxBodySize(opts.maxBodySize))
	}

	var body io.Reader
	if opts.readBody {
		body = in
	}

	req, err := request.FromCGI(env, body, reqOpts...)
	if err != nil {
		return err
	}

	view := requestView(req)

	switch strings.ToLower(opts.format) {
	case "json":
		doc, err := response.NewJSON(view)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, doc.Get("@pretty").Raw)
		return err
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q: expected yaml or json", opts.format)
	}
}

// requestView collects the derived facts and parameter stores in display order.
func requestView(req *request.Request) *params.Store {
	view := params.New(nil)
	view.Set("method", params.String(req.Method()))
	view.Set("transport_method", params.String(req.TransportMethod()))
	view.Set("uri", params.String(req.FullURI()))
	view.Set("path", params.String(req.Path()))
	view.Set("ip", params.String(req.IP()))
	view.Set("secure", params.Bool(req.IsSecure()))
	view.Set("ajax", params.Bool(req.IsAjax()))
	view.Set("headers", params.Map(req.Headers().Clone()))
	view.Set("query", params.Map(req.Query().Clone()))
	view.Set("data", params.Map(req.Data().Clone()))
	view.Set("cookies", params.Map(params.FromEntries(req.Cookies().All()...)))
	return view
}
