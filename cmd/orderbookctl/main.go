// Command orderbookctl is an operator CLI for a running orderbookd
// instance: submit bids/asks, trigger a sweep, and inspect the book.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

var app = &cli.App{
	Name:                 "orderbookctl",
	Usage:                "operate a running orderbookd instance",
	EnableBashCompletion: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "addr",
			Value: "http://127.0.0.1:8080",
			Usage: "base URL of the orderbookd HTTP API",
		},
	},
	Commands: []*cli.Command{
		bidCommand,
		askCommand,
		matchCommand,
		bookCommand,
	},
}

var bidCommand = &cli.Command{
	Name:  "bid",
	Usage: "submit a bid",
	Flags: orderFlags(),
	Action: func(c *cli.Context) error {
		return postOrder(c, "/v1/bids")
	},
}

var askCommand = &cli.Command{
	Name:  "ask",
	Usage: "submit an ask",
	Flags: orderFlags(),
	Action: func(c *cli.Context) error {
		return postOrder(c, "/v1/asks")
	},
}

var matchCommand = &cli.Command{
	Name:  "match",
	Usage: "trigger an admin-authenticated sweep",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "sender", Required: true, Usage: "admin address"},
		&cli.StringFlag{Name: "token", Usage: "admin bearer JWT"},
	},
	Action: func(c *cli.Context) error {
		body, err := json.Marshal(map[string]string{"sender": c.String("sender")})
		if err != nil {
			return err
		}
		req, err := http.NewRequest(http.MethodPost, c.String("addr")+"/v1/match", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if token := c.String("token"); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return doRequest(req)
	},
}

var bookCommand = &cli.Command{
	Name:  "book",
	Usage: "print the current order book",
	Action: func(c *cli.Context) error {
		req, err := http.NewRequest(http.MethodGet, c.String("addr")+"/v1/book", nil)
		if err != nil {
			return err
		}
		return doRequest(req)
	},
}

func orderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "id", Required: true},
		&cli.StringFlag{Name: "price", Required: true},
		&cli.StringFlag{Name: "sender", Required: true},
		&cli.StringFlag{Name: "amount", Required: true},
		&cli.Int64Flag{Name: "arrival-ts", Value: time.Now().Unix()},
	}
}

func postOrder(c *cli.Context, path string) error {
	body, err := json.Marshal(map[string]interface{}{
		"id":         c.String("id"),
		"price":      c.String("price"),
		"sender":     c.String("sender"),
		"amount":     c.String("amount"),
		"arrival_ts": c.Int64("arrival-ts"),
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.String("addr")+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return doRequest(req)
}

func doRequest(req *http.Request) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("orderbookctl: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if json.Indent(&pretty, raw, "", "  ") == nil {
		fmt.Println(pretty.String())
	} else {
		fmt.Println(string(raw))
	}

	if resp.StatusCode >= 300 {
		return fmt.Errorf("orderbookctl: server returned status %d", resp.StatusCode)
	}
	return nil
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
