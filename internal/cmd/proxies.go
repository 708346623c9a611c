package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/tecnoscrape/internal/config"
	"github.com/jimezsa/tecnoscrape/internal/network"
	"github.com/jimezsa/tecnoscrape/internal/scraper"
)

type ProxiesCmd struct {
	Check ProxyCheckCmd `cmd:"" help:"Validate proxies against a target URL."`
}

type ProxyCheckCmd struct {
	Target  string `help:"Target URL (default: the configured base URL)."`
	Timeout int    `help:"Timeout in seconds." default:"15"`
	Proxies string `help:"Comma-separated proxy URLs." env:"TECNOSCRAPE_PROXIES"`
}

type ProxyCheckResult struct {
	Proxy     string `json:"proxy"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func (p *ProxyCheckCmd) Run(ctx *Context) error {
	proxies, err := config.LoadProxies(p.Proxies)
	if err != nil {
		return err
	}
	if len(proxies) == 0 {
		return fmt.Errorf("no proxies configured")
	}

	target := p.Target
	if target == "" {
		target = ctx.Config.BaseURL
	}
	timeout := time.Duration(p.Timeout) * time.Second

	results := make([]ProxyCheckResult, 0, len(proxies))
	for _, proxy := range proxies {
		results = append(results, checkProxy(ctx, proxy, target, timeout))
	}

	return writeProxyResults(ctx, results)
}

// checkProxy sends one request through proxy alone and records the outcome.
func checkProxy(ctx *Context, proxy string, target string, timeout time.Duration) ProxyCheckResult {
	result := ProxyCheckResult{Proxy: proxy, Status: "error"}

	rotator, err := network.NewRotator([]string{proxy}, proxyBanDuration)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	client, err := newDoer(network.Options{
		Timeout:        timeout,
		AcceptLanguage: ctx.Config.AcceptLanguage,
		UserAgents:     ctx.Config.UserAgents,
		Rotator:        rotator,
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}

	req, err := fhttp.NewRequestWithContext(ctx.runContext(), fhttp.MethodGet, target, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	start := time.Now()
	resp, err := doWithTimeout(client, req, timeout)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	_ = resp.Body.Close()

	result.LatencyMS = time.Since(start).Milliseconds()
	result.Status = fmt.Sprintf("%d", resp.StatusCode)
	return result
}

func doWithTimeout(client scraper.Doer, req *fhttp.Request, timeout time.Duration) (*fhttp.Response, error) {
	ctx, cancel := context.WithTimeout(req.Context(), timeout)
	defer cancel()
	return client.Do(req.WithContext(ctx))
}

func writeProxyResults(ctx *Context, results []ProxyCheckResult) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if ctx.PlainText {
		for _, res := range results {
			line := []string{res.Proxy, res.Status, fmt.Sprintf("%d", res.LatencyMS), res.Error}
			fmt.Fprintln(ctx.Out, strings.Join(line, "\t"))
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "proxy\tstatus\tlatency_ms\terror")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", res.Proxy, res.Status, res.LatencyMS, res.Error)
	}
	return tw.Flush()
}
