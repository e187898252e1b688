package recovery_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/basin/internal/analysis"
	"github.com/san-kum/basin/internal/converge"
	"github.com/san-kum/basin/internal/field"
	"github.com/san-kum/basin/internal/phase"
	"github.com/san-kum/basin/internal/recovery"
	"github.com/san-kum/basin/internal/signature"
)

var _ = Describe("end-to-end recovery", func() {
	var (
		f   *field.Field
		cfg phase.Config
	)

	BeforeEach(func() {
		var err error
		f, err = field.New(4, 2, 42)
		Expect(err).NotTo(HaveOccurred())
		cfg = phase.DefaultConfig()
	})

	It("ranks the original input first for input 42 over [0,100)", func() {
		curve, err := converge.New(f).RunValue(context.Background(), 42, cfg)
		Expect(err).NotTo(HaveOccurred())

		target := signature.NewExtractor(signature.DefaultSeqLen).Extract(curve)
		engine := recovery.NewEngine(f, recovery.Options{Workers: 4})

		result, err := engine.Recover(context.Background(), target, recovery.IntRange{Lo: 0, Hi: 100}, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(HaveLen(100))

		Expect(result.Top().Candidate).To(Equal(42.0))
		Expect(result.Top().Score).To(BeNumerically("~", 1.0, 1e-12))

		for _, m := range result[1:] {
			Expect(m.Score).To(BeNumerically("<=", result.Top().Score))
		}
	})

	It("recovers at least 80 of 100 random distinct integer inputs in [0,100)", func() {
		report, err := analysis.EvaluateRecovery(
			context.Background(), f, cfg,
			recovery.IntRange{Lo: 0, Hi: 100},
			100, 7, 8,
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Total).To(Equal(100))
		Expect(report.Rate()).To(BeNumerically(">=", 0.8),
			"recovery rate %.2f below documented bound; failures: %v", report.Rate(), report.Failures)
	})

	It("returns an empty ranked list for an empty candidate space", func() {
		curve, err := converge.New(f).RunValue(context.Background(), 7, cfg)
		Expect(err).NotTo(HaveOccurred())

		target := signature.NewExtractor(signature.DefaultSeqLen).Extract(curve)
		engine := recovery.NewEngine(f, recovery.Options{})

		result, err := engine.Recover(context.Background(), target, recovery.List{}, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(BeEmpty())
	})
})
