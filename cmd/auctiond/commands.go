package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	restservice "github.com/orbital-network/auction/internal/interface/rest"
	"github.com/urfave/cli/v2"
)

const requestTimeout = 15 * time.Second

var (
	urlFlag = cli.StringFlag{
		Name:    "url",
		Usage:   "base url of the auction daemon",
		Value:   "http://localhost:7070",
		EnvVars: []string{"AUCTION_URL"},
	}
	tokenFlag = cli.StringFlag{
		Name:    "token",
		Usage:   "bearer token identifying the caller",
		EnvVars: []string{"AUCTION_TOKEN"},
	}
	idFlag = cli.StringFlag{
		Name:  "id",
		Usage: "id of an archived batch, the active one if omitted",
	}
	fromFlag = cli.Int64Flag{
		Name:  "from",
		Usage: "position of the first intent to show",
	}
	limitFlag = cli.Int64Flag{
		Name:  "limit",
		Usage: "max number of intents to show",
		Value: 100,
	}
	solverFlag = cli.StringFlag{
		Name:     "solver",
		Usage:    "solver identity",
		Required: true,
	}
	nowFlag = cli.Int64Flag{
		Name:  "now",
		Usage: "unix timestamp overriding the daemon clock, if allowed",
	}
	secretFlag = cli.StringFlag{
		Name:     "secret",
		Usage:    "jwt secret of the daemon",
		EnvVars:  []string{"AUCTION_JWT_SECRET"},
		Required: true,
	}
	subjectFlag = cli.StringFlag{
		Name:     "subject",
		Usage:    "caller identity carried by the token",
		Required: true,
	}
	expiryFlag = cli.DurationFlag{
		Name:  "expiry",
		Usage: "token lifetime",
		Value: 24 * time.Hour,
	}
)

var (
	infoCommand = cli.Command{
		Name:   "info",
		Usage:  "Shows the auction parameters and its current phase",
		Action: infoAction,
	}
	batchCommand = cli.Command{
		Name:   "batch",
		Usage:  "Shows the active batch or an archived one",
		Action: batchAction,
		Flags:  []cli.Flag{&idFlag},
	}
	orderbookCommand = cli.Command{
		Name:   "orderbook",
		Usage:  "Shows the intents waiting to be auctioned",
		Action: orderbookAction,
		Flags:  []cli.Flag{&fromFlag, &limitFlag},
	}
	bondCommand = cli.Command{
		Name:   "bond",
		Usage:  "Shows the bond posted by a solver",
		Action: bondAction,
		Flags:  []cli.Flag{&solverFlag},
	}
	tickCommand = cli.Command{
		Name:   "tick",
		Usage:  "Closes the expired batch and opens the next one",
		Action: tickAction,
		Flags:  []cli.Flag{&tokenFlag, &nowFlag},
	}
	tokenCommand = cli.Command{
		Name:   "token",
		Usage:  "Mints a bearer token for the given identity",
		Action: tokenAction,
		Flags:  []cli.Flag{&secretFlag, &subjectFlag, &expiryFlag},
	}
)

func infoAction(ctx *cli.Context) error {
	return get(ctx, "/v1/info", nil)
}

func batchAction(ctx *cli.Context) error {
	if id := ctx.String(idFlag.Name); len(id) > 0 {
		return get(ctx, "/v1/batches/"+url.PathEscape(id), nil)
	}
	return get(ctx, "/v1/batch", nil)
}

func orderbookAction(ctx *cli.Context) error {
	query := url.Values{}
	query.Set("from", fmt.Sprintf("%d", ctx.Int64(fromFlag.Name)))
	query.Set("limit", fmt.Sprintf("%d", ctx.Int64(limitFlag.Name)))
	return get(ctx, "/v1/orderbook", query)
}

func bondAction(ctx *cli.Context) error {
	return get(ctx, "/v1/bond/"+url.PathEscape(ctx.String(solverFlag.Name)), nil)
}

func tickAction(ctx *cli.Context) error {
	body := map[string]interface{}{}
	if ctx.IsSet(nowFlag.Name) {
		body["now"] = ctx.Int64(nowFlag.Name)
	}
	return post(ctx, "/v1/tick", ctx.String(tokenFlag.Name), body)
}

func tokenAction(ctx *cli.Context) error {
	token, err := restservice.NewToken(
		ctx.String(secretFlag.Name), ctx.String(subjectFlag.Name), ctx.Duration(expiryFlag.Name),
	)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func get(ctx *cli.Context, path string, query url.Values) error {
	endpoint := baseUrl(ctx) + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx.Context, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return do(req)
}

func post(ctx *cli.Context, path, token string, body interface{}) error {
	if len(token) <= 0 {
		return fmt.Errorf("missing token")
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx.Context, http.MethodPost, baseUrl(ctx)+path, bytes.NewReader(buf),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return do(req)
}

func do(req *http.Request) error {
	client := &http.Client{Timeout: requestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	// nolint:all
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var body interface{}
	if err := json.Unmarshal(buf, &body); err != nil {
		return fmt.Errorf("unexpected response (%d): %s", resp.StatusCode, string(buf))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		if errBody, ok := body.(map[string]interface{}); ok {
			return fmt.Errorf("%v: %v", errBody["code"], errBody["message"])
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return printJSON(body)
}

func baseUrl(ctx *cli.Context) string {
	return strings.TrimSuffix(ctx.String(urlFlag.Name), "/")
}

func printJSON(resp interface{}) error {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return err
	}

	fmt.Println(string(jsonBytes))
	return nil
}
