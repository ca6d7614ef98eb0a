// Command shadow_compare replays read-only requests against the legacy Express service and
// this API and reports status or body differences.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"
)

type target struct {
	Method   string          `json:"method"`
	Path     string          `json:"path"`
	Body     json.RawMessage `json:"body,omitempty"`
	Critical bool            `json:"critical"`
}

var defaultTargets = []target{
	{Method: http.MethodGet, Path: "/results", Critical: true},
	{Method: http.MethodGet, Path: "/gettotal", Body: json.RawMessage(`{"parties":"PartyA"}`), Critical: true},
	{Method: http.MethodGet, Path: "/results/000000000000000000000000", Critical: true},
	{Method: http.MethodGet, Path: "/results/not-an-id", Critical: false},
}

type comparison struct {
	Target       target
	LegacyStatus int
	GoStatus     int
	BodyMatch    bool
	Err          error
}

func (c comparison) diff() bool {
	return c.Err != nil || c.GoStatus != c.LegacyStatus || !c.BodyMatch
}

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:2023", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3023", "Legacy API base URL")
	flag.StringVar(&targetsPath, "targets", "", "Optional JSON file with a targets array")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets := defaultTargets
	if targetsPath != "" {
		loaded, err := loadTargets(targetsPath)
		if err != nil {
			log.Fatalf("failed to load targets: %v", err)
		}
		targets = loaded
	}

	client := &http.Client{Timeout: timeout}
	breaking := 0
	fmt.Println("Shadow Compare Report")
	for _, t := range targets {
		comp := compareTarget(client, goBase, legacyBase, t)
		printComparison(comp)
		if comp.diff() && t.Critical {
			breaking++
		}
	}

	fmt.Printf("Breaking diffs: %d\n", breaking)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg struct {
		Targets []target `json:"targets"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

func compareTarget(client *http.Client, goBase, legacyBase string, tgt target) comparison {
	comp := comparison{Target: tgt}

	goStatus, goBody, err := fetch(client, goBase, tgt)
	if err != nil {
		comp.Err = fmt.Errorf("go request failed: %w", err)
		return comp
	}
	legacyStatus, legacyBody, err := fetch(client, legacyBase, tgt)
	if err != nil {
		comp.Err = fmt.Errorf("legacy request failed: %w", err)
		return comp
	}

	comp.GoStatus = goStatus
	comp.LegacyStatus = legacyStatus
	comp.BodyMatch = bodiesEqual(goBody, legacyBody)
	return comp
}

func fetch(client *http.Client, base string, tgt target) (int, []byte, error) {
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	url := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(tgt.Path, "/")

	var body io.Reader
	if len(tgt.Body) > 0 {
		body = bytes.NewReader(tgt.Body)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, data, nil
}

func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	return reflect.DeepEqual(normalize(aj), normalize(bj))
}

// normalize maps mongoose document keys onto the API shape: _id becomes id and __v is dropped.
func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, inner := range val {
			switch k {
			case "__v":
				continue
			case "_id":
				k = "id"
			}
			out[k] = normalize(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, inner := range val {
			out[i] = normalize(inner)
		}
		return out
	default:
		return v
	}
}

func printComparison(res comparison) {
	status := "OK"
	if res.Err != nil {
		status = "ERROR"
	} else if res.diff() {
		status = "DIFF"
	}
	fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
	if res.Err != nil {
		fmt.Printf("  Error: %v\n", res.Err)
		return
	}
	fmt.Printf("  Go: %d | Legacy: %d | Body match: %t | Critical: %t\n", res.GoStatus, res.LegacyStatus, res.BodyMatch, res.Target.Critical)
}
