// Package engine is the composition root: it owns the load lifecycle and the
// current dataset, and serves every read the presentation layer needs. There
// are no ambient singletons; callers hold the *Engine handle.
package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"claimlens/internal/cache"
	"claimlens/internal/codes"
	"claimlens/internal/ingest"
	"claimlens/internal/model"
	"claimlens/internal/query"
	"claimlens/internal/validate"
)

// Dataset is one immutable load result. A load builds the whole dataset off
// to the side and swaps it in as a unit, so readers never observe a partially
// updated mixture.
type Dataset struct {
	SourceRef  string
	SourceName string
	LoadedAt   time.Time

	Claims   []model.Claim
	Lines    []model.LineItem
	Findings []model.Finding
	Options  model.FilterOptions

	linesByClaim map[string][]model.LineItem
	idsFolded    map[string]string // lower(claimId) → claimId, for the case-insensitive fallback
}

// LoadState reports whether a load is in flight and the last load error
type LoadState struct {
	Loading   bool   `json:"loading"`
	Error     string `json:"error,omitempty"`
	SourceRef string `json:"sourceRef,omitempty"`
}

// Engine owns the claims dataset and its query state
type Engine struct {
	cfg       *model.Config
	log       *logrus.Logger
	fetcher   *ingest.Fetcher
	mapper    *ingest.Mapper
	validator *validate.Validator
	codeTable *codes.Table
	datasets  cache.Cache

	mu        sync.RWMutex
	ds        *Dataset
	loading   bool
	loadErr   error
	sourceRef string

	filter    model.FilterSpec
	sortField string
	sortDir   model.SortDirection
	page      int
}

// New creates an engine from configuration. Close releases it.
func New(cfg *model.Config, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.New()
	}

	var datasets cache.Cache
	if cfg.Cache.Enabled {
		datasets = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
	}

	return &Engine{
		cfg:       cfg,
		log:       log,
		fetcher:   ingest.NewFetcher(cfg.HTTP),
		mapper:    ingest.NewMapper(log),
		validator: validate.NewValidator(cfg.Validation),
		codeTable: codes.NewTable(cfg.Codes),
		datasets:  datasets,
		sortField: model.SortByScore,
		sortDir:   model.SortDesc,
		page:      1,
	}
}

// Load runs the full pipeline for a source and replaces the active dataset
// wholesale. On failure the previous dataset (if any) stays readable and the
// error is surfaced through LoadState. Re-loading is last-write-wins.
func (e *Engine) Load(ctx context.Context, sourceRef string) error {
	e.mu.Lock()
	e.loading = true
	e.sourceRef = sourceRef
	e.mu.Unlock()

	ds, err := e.build(ctx, sourceRef)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false
	if err != nil {
		e.loadErr = err
		return err
	}
	e.loadErr = nil
	e.ds = ds
	e.page = 1
	return nil
}

// build produces a complete dataset without touching engine state
func (e *Engine) build(ctx context.Context, sourceRef string) (*Dataset, error) {
	if e.datasets != nil {
		if cached, ok := e.datasets.Get(cache.Key(sourceRef)); ok {
			if ds, ok := cached.(*Dataset); ok {
				e.log.WithField("source", sourceRef).Debug("dataset served from cache")
				return ds, nil
			}
		}
	}

	src, err := e.fetcher.Fetch(ctx, sourceRef)
	if err != nil {
		return nil, fmt.Errorf("fetch source: %w", err)
	}

	sheets, err := ingest.ParseSource(src)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}

	claims := e.mapper.MapClaims(sheets[0])

	var lines []model.LineItem
	if len(sheets) > 1 {
		lines = e.mapper.MapLines(sheets[1])
	} else {
		e.log.WithField("source", src.Name).Debug("no line-item sheet present")
	}

	findings := e.validator.Validate(claims, lines)
	e.reportDiagnostics(src.Name, claims, lines, findings)

	ds := &Dataset{
		SourceRef:    sourceRef,
		SourceName:   src.Name,
		LoadedAt:     time.Now().UTC(),
		Claims:       claims,
		Lines:        lines,
		Findings:     findings,
		Options:      buildFilterOptions(claims),
		linesByClaim: validate.GroupLinesByClaim(lines),
		idsFolded:    foldClaimIDs(lines),
	}

	if e.datasets != nil {
		e.datasets.Set(cache.Key(sourceRef), ds, e.cfg.Cache.TTL)
	}
	return ds, nil
}

func (e *Engine) reportDiagnostics(source string, claims []model.Claim, lines []model.LineItem, findings []model.Finding) {
	e.log.WithFields(logrus.Fields{
		"source": source,
		"claims": len(claims),
		"lines":  len(lines),
	}).Info("dataset loaded")

	perClaim := validate.GroupLinesByClaim(lines)
	for claimID, claimLines := range perClaim {
		e.log.WithFields(logrus.Fields{"clmId": claimID, "lines": len(claimLines)}).
			Debug("line items per claim")
	}

	if len(findings) == 0 {
		e.log.WithField("source", source).Info("line data validation passed")
		return
	}
	for _, f := range findings {
		e.log.WithField("source", source).Warn(f.String())
	}
}

// Close releases the engine's resources
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.datasets != nil {
		e.datasets.Clear()
	}
	e.ds = nil
}

// SetFilter replaces the active filter and resets to the first page
func (e *Engine) SetFilter(spec model.FilterSpec) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter = spec
	e.page = 1
}

// SetSort replaces the active sort
func (e *Engine) SetSort(field string, dir model.SortDirection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sortField = field
	e.sortDir = dir
}

// SetPage selects the current page (clamped at read time)
func (e *Engine) SetPage(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page = n
}

// Claims returns the current filtered, sorted claim set
func (e *Engine) Claims() []model.Claim {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.viewLocked()
}

// Page returns the current page of the filtered, sorted claim set
func (e *Engine) Page() model.Page {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return query.Paginate(e.viewLocked(), e.cfg.Query.PageSize, e.page)
}

func (e *Engine) viewLocked() []model.Claim {
	if e.ds == nil {
		return nil
	}
	filtered := query.Apply(e.ds.Claims, e.filter, e.codeTable)
	return query.Sort(filtered, e.sortField, e.sortDir)
}

// LineItemsFor returns the line items of a claim, trying an exact id match
// first and falling back to a case-insensitive one.
func (e *Engine) LineItemsFor(claimID string) []model.LineItem {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.ds == nil {
		return nil
	}
	if lines, ok := e.ds.linesByClaim[claimID]; ok {
		return lines
	}
	if actual, ok := e.ds.idsFolded[strings.ToLower(claimID)]; ok {
		return e.ds.linesByClaim[actual]
	}
	return nil
}

// LineDetail summarizes a claim's line items for the drill-down view
func (e *Engine) LineDetail(claimID string) model.LineDetail {
	lines := e.LineItemsFor(claimID)

	detail := model.LineDetail{ClaimID: claimID, LineCount: len(lines)}
	distinctDiag := make(map[string]bool)
	for _, line := range lines {
		detail.TotalChargedAmount += line.ChargedAmount
		if code := meaningfulCode(line.DiagnosisCd); code != "" {
			distinctDiag[code] = true
		}
		if meaningfulCode(line.ProcedureCd) != "" {
			detail.ProcedureCodeCount++
		}
		if meaningfulCode(line.RevenueCd) != "" {
			detail.RevenueCodeCount++
		}
	}
	detail.DistinctDiagCodes = len(distinctDiag)
	return detail
}

// KPIs returns the summary metrics over the filtered set
func (e *Engine) KPIs() model.KPIMetrics {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.ds == nil {
		return model.KPIMetrics{}
	}
	return query.ComputeKPIs(query.Apply(e.ds.Claims, e.filter, e.codeTable))
}

// ChartGroupings returns the chart-ready aggregations over the filtered set
func (e *Engine) ChartGroupings() model.ChartGroupings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.ds == nil {
		return model.ChartGroupings{}
	}
	filtered := query.Apply(e.ds.Claims, e.filter, e.codeTable)
	return model.ChartGroupings{
		ByCity:         query.GroupBy(filtered, query.GroupByCity, e.cfg.Query.CityTopN),
		BySpecialty:    query.GroupBy(filtered, query.GroupBySpecialty, 0),
		ByAmountBucket: query.GroupBy(filtered, query.GroupByAmountBucket, 0),
		ByRisk:         query.GroupBy(filtered, query.GroupByRisk, 0),
	}
}

// FilterOptions returns the distinct observed values per filterable field
func (e *Engine) FilterOptions() model.FilterOptions {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.ds == nil {
		return model.FilterOptions{}
	}
	return e.ds.Options
}

// Findings returns the integrity findings of the current dataset
func (e *Engine) Findings() []model.Finding {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.ds == nil {
		return nil
	}
	return e.ds.Findings
}

// Dataset returns the current dataset, or nil before the first load
func (e *Engine) Dataset() *Dataset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ds
}

// LoadState reports the load lifecycle: loading → loaded | errored
func (e *Engine) LoadState() LoadState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	state := LoadState{Loading: e.loading, SourceRef: e.sourceRef}
	if e.loadErr != nil {
		state.Error = e.loadErr.Error()
	}
	return state
}

func buildFilterOptions(claims []model.Claim) model.FilterOptions {
	return model.FilterOptions{
		AAInd:       distinctSorted(claims, func(c model.Claim) string { return c.AAInd }),
		ClaimTypeCd: distinctSorted(claims, func(c model.Claim) string { return c.ClaimTypeCd }),
		FormTypeCd:  distinctSorted(claims, func(c model.Claim) string { return c.FormTypeCd }),
		ClaimStatus: distinctSorted(claims, func(c model.Claim) string { return c.ClaimStatus }),
	}
}

func distinctSorted(claims []model.Claim, value func(model.Claim) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, c := range claims {
		v := value(c)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

func foldClaimIDs(lines []model.LineItem) map[string]string {
	folded := make(map[string]string)
	for _, line := range lines {
		lower := strings.ToLower(line.ClaimID)
		if _, ok := folded[lower]; !ok {
			folded[lower] = line.ClaimID
		}
	}
	return folded
}

// meaningfulCode filters out blank and placeholder code cells
func meaningfulCode(code string) string {
	c := strings.TrimSpace(code)
	if c == "" || c == "-" || c == "null" {
		return ""
	}
	return c
}
