// Command loadout-lambda serves the search behind an AWS Lambda Function URL.
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/huangsam/loadout/core"
	"github.com/huangsam/loadout/internal/contract"
	"github.com/huangsam/loadout/internal/outwriter"
	"github.com/huangsam/loadout/schema"
	"github.com/tidwall/gjson"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

// handler runs one search per request. The body looks like
//
//	{"targets": {"weapon": 100}, "tier": 5, "slots": {"small": 1, "large": 2},
//	 "fixed": ["gunner:health"], "factorize": true, "limit": 10,
//	 "customTier": "30/30/30"}
//
// and every field is optional.
func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(http.StatusBadRequest, "invalid base64 body")
		}
		body = string(decoded)
	}
	if body == "" {
		body = "{}"
	}
	if !gjson.Valid(body) || !gjson.Parse(body).IsObject() {
		return errResp(http.StatusBadRequest, "body must be a JSON object")
	}
	req := gjson.Parse(body)

	cfg := &contract.Config{}
	if err := contract.ProcessAndValidate(cfg, baseInput(req.Get("customTier").String())); err != nil {
		return errResp(http.StatusBadRequest, err.Error())
	}
	if err := contract.RevalidateSearch(cfg, overridesFrom(req)); err != nil {
		return errResp(http.StatusBadRequest, err.Error())
	}

	outcome, _, err := core.GetSearchResults(core.WithSuppressHeader(ctx), cfg, nil)
	if err != nil {
		return errResp(http.StatusGatewayTimeout, err.Error())
	}

	var buf bytes.Buffer
	if err := outwriter.WriteJSONSearch(&buf, outcome, cfg.Targets, nil); err != nil {
		return errResp(http.StatusInternalServerError, err.Error())
	}
	return events.LambdaFunctionURLResponse{StatusCode: http.StatusOK, Headers: jsonHeader, Body: buf.String()}, nil
}

// baseInput mirrors the CLI defaults without a pinned store.
func baseInput(customTier string) *contract.ConfigRawInput {
	return &contract.ConfigRawInput{
		Tier:          schema.DefaultTier,
		CustomTier:    customTier,
		TimeBudget:    contract.DefaultTimeBudget.String(),
		Limit:         contract.DefaultResultLimit,
		Precision:     contract.DefaultPrecision,
		Output:        string(schema.JSONOut),
		Color:         "no",
		PinnedBackend: string(schema.NoneBackend),
	}
}

func overridesFrom(req gjson.Result) contract.SearchOverrides {
	var o contract.SearchOverrides

	if targets := req.Get("targets"); targets.IsObject() {
		o.Targets = map[schema.Attribute]int{}
		targets.ForEach(func(key, value gjson.Result) bool {
			if attr, err := schema.ParseAttribute(key.String()); err == nil {
				o.Targets[attr] = int(value.Int())
			}
			return true
		})
	}

	o.Tier = int(req.Get("tier").Int())

	if slots := req.Get("slots"); slots.IsObject() {
		o.Slots = &schema.SlotBudget{
			Small: int(slots.Get("small").Int()),
			Large: int(slots.Get("large").Int()),
		}
	}

	for _, f := range req.Get("fixed").Array() {
		o.Fixed = append(o.Fixed, f.String())
	}

	if f := req.Get("factorize"); f.Exists() {
		factorize := f.Bool()
		o.Factorize = &factorize
	}

	o.Limit = int(req.Get("limit").Int())
	return o
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}
