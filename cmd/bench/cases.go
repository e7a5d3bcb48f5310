// README: Smoke cases for the import endpoints, health, ledger rows, stats counters, and load.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	statusPass    = "PASS"
	statusFail    = "FAIL"
	statusPending = "PENDING"
	statusSkip    = "SKIP"
)

type Runner struct {
	cfg     Config
	httpc   *http.Client
	db      *pgxpool.Pool
	redis   *redis.Client
	started time.Time
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 90 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	r.started = time.Now()
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "ledger not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "stats not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: statusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: statusFail, Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "ledger not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				var missing []string
				for _, t := range tables {
					var exists bool
					if err := r.db.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, t).Scan(&exists); err != nil || !exists {
						missing = append(missing, t)
					}
				}
				if len(missing) > 0 {
					return Result{Status: statusFail, Note: "missing: " + strings.Join(missing, ",")}
				}
				return Result{Status: statusPass}
			},
		},
		httpCaseMethod("API: health", http.MethodGet, base+"/health", "", []int{http.StatusOK}, nil),
		methodNotAllowedCase("API: parsePaste rejects GET", base+"/api/parsePaste"),
		methodNotAllowedCase("API: planDay rejects PUT", base+"/api/planDay"),
		importCase("API: parsePaste sample", base+"/api/parsePaste", `{"text":"Flight BA123 LHR to JFK on 3 May 09:40. Museum at 10am then lunch.","existingItems":[]}`),
		importCase("API: planDay sample", base+"/api/planDay", `{"text":"relaxed day, good coffee","tripContext":{"destination":"Lisbon"},"preferences":{"favoriteFoodCSV":"seafood","drinksAlcohol":false,"interestsCSV":"architecture"},"existingItems":[]}`),
		{
			Name: "Ledger: calls recorded",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "ledger not configured"}
				}
				if !r.cfg.CallProvider {
					return Result{Status: statusSkip, Note: "call-provider=false"}
				}
				var n int
				err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM import_calls WHERE created_at >= $1`, r.started.Add(-time.Minute)).Scan(&n)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if n == 0 {
					return Result{Status: statusFail, Note: "no import_calls rows since start"}
				}
				return Result{Status: statusPass, Note: fmt.Sprintf("rows=%d", n)}
			},
		},
		{
			Name: "Stats: counters present",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "stats not configured"}
				}
				if !r.cfg.CallProvider {
					return Result{Status: statusSkip, Note: "call-provider=false"}
				}
				var notes []string
				for _, v := range []string{"extract", "plan"} {
					total, err := r.redis.HGet(ctx, "stats:import:"+v, "total").Result()
					if err != nil {
						return Result{Status: statusFail, Note: fmt.Sprintf("%s: %v", v, err)}
					}
					notes = append(notes, v+"="+total)
				}
				return Result{Status: statusPass, Note: strings.Join(notes, " ")}
			},
		},
		{
			Name: "Perf: health throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, http.MethodGet, base+"/health")
			},
		},
		{
			Name: "Perf: method guard throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, http.MethodGet, base+"/api/parsePaste")
			},
		},
	}
}

func httpCaseMethod(name, method, url, body string, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			req, err := http.NewRequestWithContext(ctx, method, url, strings.NewReader(body))
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			req.Header.Set("Content-Type", "application/json")
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			defer resp.Body.Close()
			b, _ := io.ReadAll(resp.Body)
			latency := time.Since(start)

			switch {
			case contains(okStatuses, resp.StatusCode):
				return Result{Status: statusPass, Latency: latency}
			case contains(pendingStatuses, resp.StatusCode):
				return Result{Status: statusPending, Latency: latency, Note: fmt.Sprintf("status=%d %s", resp.StatusCode, truncate(string(b), 120))}
			default:
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d %s", resp.StatusCode, truncate(string(b), 120))}
			}
		},
	}
}

func methodNotAllowedCase(name, url string) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			method := http.MethodGet
			if strings.HasSuffix(url, "/planDay") {
				method = http.MethodPut
			}
			req, err := http.NewRequestWithContext(ctx, method, url, nil)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusMethodNotAllowed {
				return Result{Status: statusFail, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
			}
			if allow := resp.Header.Get("Allow"); allow != http.MethodPost {
				return Result{Status: statusFail, Note: fmt.Sprintf("Allow=%q", allow)}
			}
			return Result{Status: statusPass}
		},
	}
}

// importCase posts a sample body. A 200 must carry an items array; a 401 or a missing key is pending.
func importCase(name, url, body string) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			if !r.cfg.CallProvider {
				return Result{Status: statusSkip, Note: "call-provider=false"}
			}
			start := time.Now()
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			req.Header.Set("Content-Type", "application/json")
			if tok := os.Getenv("TRIP_PROXY_BENCH_ID_TOKEN"); tok != "" {
				req.Header.Set("Authorization", "Bearer "+tok)
			}
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			defer resp.Body.Close()
			b, _ := io.ReadAll(resp.Body)
			latency := time.Since(start)

			switch {
			case resp.StatusCode == http.StatusOK:
				var out struct {
					Items []json.RawMessage `json:"items"`
				}
				if err := json.Unmarshal(b, &out); err != nil || out.Items == nil {
					return Result{Status: statusFail, Latency: latency, Note: "response has no items array"}
				}
				return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("items=%d", len(out.Items))}
			case resp.StatusCode == http.StatusUnauthorized, strings.Contains(string(b), "Missing GEMINI_API_KEY"):
				return Result{Status: statusPending, Latency: latency, Note: truncate(string(b), 120)}
			default:
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d %s", resp.StatusCode, truncate(string(b), 120))}
			}
		},
	}
}

func perfLoad(ctx context.Context, r *Runner, method, url string) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count int64
	var errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, method, url, nil)
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	cleaned := strings.Join(filtered, "\n")
	parts := strings.Split(cleaned, ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
