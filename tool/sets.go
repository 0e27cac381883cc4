package tool

// Builtins returns the built-in tools: search (only when searchKey is set),
// calculator and clock.
func Builtins(searchKey string, searchOpts ...SearchToolOption) []ToolPair {
	var pairs []ToolPair
	if searchKey != "" {
		t, h := NewSearchTool(searchKey, searchOpts...)
		pairs = append(pairs, ToolPair{Tool: t, Handler: h})
	}

	t, h := NewCalculatorTool()
	pairs = append(pairs, ToolPair{Tool: t, Handler: h})

	t, h = NewClockTool()
	pairs = append(pairs, ToolPair{Tool: t, Handler: h})

	return pairs
}

// MustRegisterAll registers all pairs and panics on error.
func MustRegisterAll(r *Registry, pairs []ToolPair) {
	if err := r.RegisterAll(pairs...); err != nil {
		panic(err)
	}
}
