package lending

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ProbabilityToSupply", func() {
	const (
		initial = 0.03
		maximum = 0.2
	)

	DescribeTable("should follow the kinked linear law",
		func(current, expected float64) {
			Expect(ProbabilityToSupply(initial, current, maximum)).
				To(BeNumerically("~", expected, 1e-5))
		},
		Entry("at the initial rate", initial, 0.5),
		Entry("at the maximum rate", maximum, 1.0),
		Entry("at zero", 0.0, 0.0),
		Entry("halfway to the maximum", (initial+maximum)/2, 0.75),
		Entry("at half the initial rate", initial/2, 0.25),
	)

	It("should be monotonic", func() {
		prev := -1.0
		for r := 0.0; r <= maximum; r += 0.001 {
			p := ProbabilityToSupply(initial, r, maximum)
			Expect(p).To(BeNumerically(">=", prev))
			prev = p
		}
	})

	It("should be available on a rate view", func() {
		view := RateView{Initial: initial, Current: initial, Maximum: maximum}
		Expect(view.ProbabilityToSupply()).To(BeNumerically("~", 0.5, 1e-12))
	})
})
