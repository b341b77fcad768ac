package material_test

import (
	"testing"

	"mini-render/internal/material"
)

func BenchmarkApplyLit(b *testing.B) {
	f := newFixture(b)
	m, err := material.Decode("bench", map[string]any{
		"type":     "lit",
		"shader":   "lit",
		"albedo":   "wood",
		"emissive": "glow",
		"sampler":  "nearest",
	}, f.lib)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.dev.ResetCalls()
		_ = m.Apply(f.dev)
	}
}
