package filter

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/wistiakit/wistia"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	baseEnv    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size <= 0 {
			return
		}
		if cache, err := newFilterCache(size); err == nil {
			c.cache = cache
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.baseEnv, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		baseEnv: createBaseEnvironment(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	baseEnv map[string]any
	cache   *filterCache
}

// Compile compiles an expression into an executable filter. Unknown names are
// rejected here rather than silently evaluating to false later.
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.baseEnv),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		baseEnv:    c.baseEnv,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate evaluates the filter against a project or media. Items that fail
// to evaluate do not match.
func (f *exprFilter) Evaluate(item wistia.DataItem) bool {
	ok, err := f.Match(item)
	return err == nil && ok
}

// Match evaluates the filter and reports evaluation failures
func (f *exprFilter) Match(item wistia.DataItem) (bool, error) {
	env := make(map[string]any, len(f.baseEnv))
	maps.Copy(env, f.baseEnv)

	switch v := item.(type) {
	case wistia.Media:
		addMediaEnvironment(env, v)
	case *wistia.Media:
		addMediaEnvironment(env, *v)
	case wistia.Project:
		addProjectEnvironment(env, v)
	case *wistia.Project:
		addProjectEnvironment(env, *v)
	default:
		return false, &EvaluationError{
			Expression: f.expression,
			Reason:     fmt.Sprintf("%T", item),
			Err:        ErrUnsupportedItem,
		}
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			HashedID:   item.GetHashedID(),
			Reason:     "failed to run expression",
			Err:        err,
		}
	}

	// AsBool at compile time guarantees the result type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createBaseEnvironment builds the compile-time environment: static helpers
// plus zero-valued fields for both item kinds, so every name has a fixed type
// and expressions written for one kind still run against the other.
func createBaseEnvironment() map[string]any {
	env := make(map[string]any, 64)
	addHelperFunctions(env)
	addProjectEnvironment(env, wistia.Project{})
	addMediaEnvironment(env, wistia.Media{})
	env["Kind"] = ""
	return env
}

// addHelperFunctions adds all helper functions to the provided map
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["monthsAgo"] = func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["stripNumbering"] = wistia.RemoveNumberPrefix
	// Current time
	env["now"] = time.Now
}

// addMediaEnvironment sets the fields and helpers describing a media
func addMediaEnvironment(env map[string]any, m wistia.Media) {
	env["Kind"] = "media"
	env["Media"] = m

	env["HashedID"] = m.HashedID
	env["Name"] = m.Name
	env["Description"] = m.Summary
	env["Created"] = m.CreatedAt()
	env["Updated"] = m.UpdatedAt()

	env["Type"] = string(m.Type)
	env["Section"] = m.SectionTitle()
	env["Status"] = m.StatusValue()
	env["Progress"] = m.Progress
	env["AssetCount"] = len(m.Assets)
	env["HasThumbnail"] = m.Thumbnail != nil

	env["isVideo"] = func() bool {
		return m.Type.IsVideo()
	}
	env["hasSection"] = func() bool {
		return m.Section != nil
	}
	env["inSection"] = func(title string) bool {
		return m.Section != nil && strings.EqualFold(*m.Section, title)
	}
	env["hasAsset"] = createHasAssetFunc(m.Assets)
	env["assetSize"] = createAssetSizeFunc(m.Assets)
}

// addProjectEnvironment sets the fields and helpers describing a project
func addProjectEnvironment(env map[string]any, p wistia.Project) {
	env["Kind"] = "project"
	env["Project"] = p

	env["HashedID"] = p.HashedID
	env["Name"] = p.Name
	env["Description"] = p.Summary
	env["Created"] = p.CreatedAt()
	env["Updated"] = p.UpdatedAt()

	env["MediaCount"] = p.MediaCount
	env["Public"] = p.ViewingIsPublic
	env["AnonymousCanUpload"] = p.AnonymousCanUpload
	env["AnonymousCanDownload"] = p.AnonymousCanDownload

	env["hasMedias"] = func() bool {
		return p.MediaCount > 0 || len(p.Medias) > 0
	}
}

func createHasAssetFunc(assets []wistia.Asset) func(string) bool {
	return func(assetType string) bool {
		for _, a := range assets {
			if strings.EqualFold(a.Type, assetType) {
				return true
			}
		}
		return false
	}
}

func createAssetSizeFunc(assets []wistia.Asset) func(string) int64 {
	return func(assetType string) int64 {
		for _, a := range assets {
			if strings.EqualFold(a.Type, assetType) {
				return a.FileSize
			}
		}
		return 0
	}
}
