package ratepath_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/lendsim/config"
	"github.com/sarchlab/lendsim/ratepath"
)

type constantRoll float64

func (r constantRoll) Float64() float64 {
	return float64(r)
}

var _ = Describe("Generator", func() {
	var g ratepath.Generator

	BeforeEach(func() {
		g = ratepath.NewGenerator(365, 0.06)
	})

	It("should fill in the defaults", func() {
		Expect(g.FlipProbability).To(BeNumerically("~", 30.0/365, 1e-12))
		Expect(g.Gamma).To(BeNumerically("~", 1/0.06, 1e-9))
		Expect(g.Validate()).To(Succeed())
	})

	It("should sample one year evenly", func() {
		times := g.Times()

		Expect(times).To(HaveLen(365))
		Expect(times[0]).To(Equal(0.0))
		Expect(times[364]).To(Equal(1.0))
		Expect(times[182]).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("should rise towards twice the rate without flips", func() {
		path, err := g.Path(constantRoll(0.99))

		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(HaveLen(365))
		Expect(path[0]).To(BeNumerically("~", 0.06, 1e-12))
		for i := 1; i < len(path); i++ {
			Expect(path[i]).To(BeNumerically(">", path[i-1]))
		}
		Expect(path[364]).To(BeNumerically("~", 0.09, 1e-12))
	})

	It("should turn around on every flip", func() {
		g.FlipProbability = 1

		path, err := g.Path(constantRoll(0))

		Expect(err).NotTo(HaveOccurred())
		Expect(path[1]).To(BeNumerically("<", path[0]))
		Expect(path[2]).To(BeNumerically(">", path[1]))
		Expect(path[3]).To(BeNumerically("<", path[2]))
	})

	It("should keep the rates positive", func() {
		paths, err := g.Paths(20, rand.New(rand.NewSource(1)))

		Expect(err).NotTo(HaveOccurred())
		Expect(paths).To(HaveLen(20))
		for _, path := range paths {
			for _, rate := range path {
				Expect(rate).To(BeNumerically(">", 0))
			}
		}
	})

	It("should repeat the paths for the same seed", func() {
		a, _ := g.Paths(3, rand.New(rand.NewSource(8)))
		b, _ := g.Paths(3, rand.New(rand.NewSource(8)))

		Expect(a).To(Equal(b))
		Expect(a[0]).NotTo(Equal(a[1]))
	})

	DescribeTable("should reject invalid generators",
		func(mutate func(*ratepath.Generator)) {
			mutate(&g)

			_, err := g.Path(constantRoll(0.5))

			Expect(err).To(MatchError(config.ErrInvalidConfig))
		},
		Entry("too few points", func(g *ratepath.Generator) { g.Points = 1 }),
		Entry("zero rate", func(g *ratepath.Generator) { g.InitialRate = 0 }),
		Entry("negative gamma", func(g *ratepath.Generator) { g.Gamma = -1 }),
		Entry("flip above one", func(g *ratepath.Generator) {
			g.FlipProbability = 1.5
		}),
	)
})

var _ = Describe("Melt", func() {
	It("should list the points path by path", func() {
		times := []float64{0, 1}
		paths := [][]float64{{0.1, 0.2}, {0.3, 0.4}}

		Expect(ratepath.Melt(times, paths)).To(Equal([]ratepath.Entry{
			{Time: 0, Path: 1, Rate: 0.1},
			{Time: 1, Path: 1, Rate: 0.2},
			{Time: 0, Path: 2, Rate: 0.3},
			{Time: 1, Path: 2, Rate: 0.4},
		}))
	})
})
