// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package proxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
)

// machinesPath is the upstream resource path for an app's machines.
func machinesPath(appName string) string {
	return "/v1/apps/" + appName + "/machines"
}

// createRequest is the decoded body of POST /v0/machines/new. app_name and
// use_private_api address the proxy itself and are lifted out; every other
// field — recognized ones like name and region included — stays in Config
// and is forwarded to the upstream untouched.
type createRequest struct {
	AppName       string
	UsePrivateAPI bool
	Config        map[string]any
}

func parseCreateRequest(body io.Reader) (*createRequest, error) {
	dec := json.NewDecoder(body)
	// UseNumber keeps numeric config fields intact across the re-encode.
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode request body: %w", err)
	}

	req := &createRequest{Config: fields}
	if name, ok := fields["app_name"].(string); ok {
		req.AppName = name
	}
	delete(fields, "app_name")
	if flag, ok := fields["use_private_api"].(bool); ok {
		req.UsePrivateAPI = flag
	}
	delete(fields, "use_private_api")

	if req.AppName == "" {
		return nil, errors.New("app_name required")
	}
	return req, nil
}

// listRequest is the parsed query of GET /v0/machines/list.
type listRequest struct {
	AppName        string
	UsePrivateAPI  bool
	IncludeDeleted bool
	Region         string
}

func parseListRequest(query url.Values) (*listRequest, error) {
	req := &listRequest{
		AppName:        query.Get("app_name"),
		UsePrivateAPI:  parseFlag(query.Get("use_private_api")),
		IncludeDeleted: parseFlag(query.Get("include_deleted")),
		Region:         query.Get("region"),
	}
	if req.AppName == "" {
		return nil, errors.New("app_name query parameter required")
	}
	return req, nil
}

// parseFlag treats an absent or unparseable value as false.
func parseFlag(val string) bool {
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return false
	}
	return parsed
}

// createTarget resolves the outbound URL for a machine creation.
func createTarget(base *url.URL, appName string) (*url.URL, error) {
	return url.Parse(base.String() + machinesPath(appName))
}

// listTarget resolves the outbound URL for a machine listing. Filters that
// were not supplied are omitted from the query string entirely rather than
// sent with default values.
func listTarget(base *url.URL, req *listRequest) (*url.URL, error) {
	target, err := url.Parse(base.String() + machinesPath(req.AppName))
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	if req.IncludeDeleted {
		query.Set("include_deleted", "true")
	}
	if req.Region != "" {
		query.Set("region", req.Region)
	}
	target.RawQuery = query.Encode()

	return target, nil
}
