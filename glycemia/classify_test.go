package glycemia_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/afya-care/monitoring/glycemia"
)

var _ = Describe("Classify", func() {
	DescribeTable("fasting readings",
		func(value float64, expected glycemia.Status) {
			Expect(glycemia.Classify(value, glycemia.ContextFasting)).To(Equal(expected))
		},
		Entry("well below the hypo threshold", 0.40, glycemia.StatusHypo),
		Entry("just below the hypo threshold", 0.59, glycemia.StatusHypo),
		Entry("exactly at the hypo threshold", 0.60, glycemia.StatusNormal),
		Entry("a typical fasting value", 0.85, glycemia.StatusNormal),
		Entry("exactly at the normal ceiling", 0.95, glycemia.StatusNormal),
		Entry("just above the normal ceiling", 0.951, glycemia.StatusWarning),
		Entry("exactly at the warning ceiling", 1.05, glycemia.StatusWarning),
		Entry("just above the warning ceiling", 1.051, glycemia.StatusHigh),
		Entry("well above the warning ceiling", 1.80, glycemia.StatusHigh),
	)

	DescribeTable("post-meal readings",
		func(value float64, expected glycemia.Status) {
			Expect(glycemia.Classify(value, glycemia.ContextAfterMeal)).To(Equal(expected))
		},
		Entry("below the hypo threshold", 0.55, glycemia.StatusHypo),
		Entry("a typical post-meal value", 1.10, glycemia.StatusNormal),
		Entry("exactly at the normal ceiling", 1.20, glycemia.StatusNormal),
		Entry("just above the normal ceiling", 1.21, glycemia.StatusWarning),
		Entry("exactly at the warning ceiling", 1.40, glycemia.StatusWarning),
		Entry("just above the warning ceiling", 1.41, glycemia.StatusHigh),
	)

	It("applies the meal thresholds to pre-meal readings", func() {
		// 1.0 g/L is above the fasting normal ceiling but within meal targets
		Expect(glycemia.Classify(1.0, glycemia.ContextBeforeMeal)).To(Equal(glycemia.StatusNormal))
		Expect(glycemia.Classify(1.0, glycemia.ContextFasting)).To(Equal(glycemia.StatusWarning))
	})

	It("assigns every positive value to exactly one band", func() {
		for value := 0.01; value <= 3.0; value += 0.01 {
			status := glycemia.Classify(value, glycemia.ContextFasting)
			Expect(status).To(BeElementOf(
				glycemia.StatusHypo, glycemia.StatusNormal, glycemia.StatusWarning, glycemia.StatusHigh,
			))
		}
	})
})
