package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/syncvisor/syncvisor/internal/chain"
)

const rpcMethodL2Tips = "node_getL2Tips"

// l2Tips is the result payload of node_getL2Tips.
type l2Tips struct {
	Latest    tipRef `json:"latest"`
	Proven    tipRef `json:"proven"`
	Finalized tipRef `json:"finalized"`
}

// tipRef is one chain tip reference. Number is kept raw because some
// deployments serialize it as a JSON number and others as a quoted,
// grouped string.
type tipRef struct {
	Number json.RawMessage `json:"number"`
	Hash   string          `json:"hash"`
}

// height parses the tip's block number, stripping any decoration.
func (t tipRef) height() (chain.Height, error) {
	raw := strings.Trim(strings.TrimSpace(string(t.Number)), `"`)
	if raw == "" || raw == "null" {
		return chain.Unknown(), &chain.ParseError{Raw: raw}
	}
	return chain.ParseDecorated(raw)
}

// getL2Tips performs a single node_getL2Tips JSON-RPC call. No retries:
// retry policy is the caller's concern.
func getL2Tips(ctx context.Context, client *http.Client, url, upstream string) (*l2Tips, error) {
	reqBody := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  rpcMethodL2Tips,
		"params":  []interface{}{},
		"id":      1,
	}

	reqData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &FetchError{Upstream: upstream, Stage: StageRequest, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(reqData)))
	if err != nil {
		return nil, &FetchError{Upstream: upstream, Stage: StageRequest, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Upstream: upstream, Stage: StageRequest, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			Upstream: upstream,
			Stage:    StageRequest,
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var rpcResp struct {
		Result *l2Tips `json:"result"`
		Error  *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	// An empty body fails here with io.EOF, which is a fetch failure like
	// any other malformed payload.
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, &FetchError{Upstream: upstream, Stage: StageDecode, Err: err}
	}

	if rpcResp.Error != nil {
		return nil, &FetchError{
			Upstream: upstream,
			Stage:    StageRPC,
			Err:      fmt.Errorf("RPC error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message),
		}
	}

	if rpcResp.Result == nil {
		return nil, &FetchError{
			Upstream: upstream,
			Stage:    StageDecode,
			Err:      fmt.Errorf("response carries no result"),
		}
	}

	return rpcResp.Result, nil
}
