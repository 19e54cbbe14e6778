package rk_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rkstep/internal/rk"
	"github.com/san-kum/rkstep/internal/tableau"
)

var _ = Describe("Static engine", func() {
	var f rk.FuncOf[float64]

	BeforeEach(func() {
		f = func(x, y float64) float64 { return y - x*x + 1 }
	})

	DescribeTable("agrees with the generic engine over many steps",
		func(tab *tableau.Tableau[float64]) {
			s := rk.Specialize(tab)
			g := rk.NewGeneric(tab)
			ks, kg := rk.Buffer[float64](s), rk.Buffer[float64](g)

			ys, yg := 0.5, 0.5
			h := 0.05
			for i := 0; i < 40; i++ {
				x := float64(i) * h
				ys = s.Step(f, ys, ys, x, h, ks)
				yg = g.Step(f, yg, yg, x, h, kg)
			}
			Expect(ys).To(Equal(yg))

			// y(2) = (x+1)^2 - 0.5 e^x
			Expect(ys).To(BeNumerically("~", 9-0.5*math.Exp(2), 1e-2))
		},
		Entry("heun", tableau.Heun),
		Entry("midpoint", tableau.Midpoint),
		Entry("kutta3", tableau.Kutta3),
		Entry("rk4", tableau.RK4),
		Entry("rk38", tableau.RK38),
		Entry("rkf45", tableau.RKF45),
		Entry("dopri5", tableau.DoPri5),
	)

	It("sizes its buffer from the sparsity analysis", func() {
		for _, name := range tableau.Methods() {
			tab, err := tableau.Lookup(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(rk.Specialize(tab).KSize()).To(Equal(tab.KBufferSize()), name)
			Expect(rk.NewGeneric(tab).KSize()).To(Equal(tab.Stages()), name)
		}
	})

	It("never evaluates a dead stage", func() {
		c := &rk.Counter[float64]{F: f}
		s := rk.Specialize(tableau.DoPri5)
		k := rk.Buffer[float64](s)
		for i := 0; i < 10; i++ {
			s.Step(c, 1, 1, 0, 0.1, k)
		}
		Expect(c.Calls).To(Equal(60))
	})

	It("rejects an undersized buffer before calling f", func() {
		c := &rk.Counter[float64]{F: f}
		s := rk.Specialize(tableau.RKF45)
		Expect(func() { s.Step(c, 1, 1, 0, 0.1, make([]float64, 3)) }).To(Panic())
		Expect(c.Calls).To(BeZero())
	})

	Context("with an all-zero tableau", func() {
		It("evaluates nothing and returns the accumulator", func() {
			zero := tableau.MustNew([]float64{0, 0, 0}, []float64{0, 0}, []float64{0}, []float64{0, 0})
			c := &rk.Counter[float64]{F: f}
			s := rk.Specialize(zero)

			Expect(s.Live()).To(BeEmpty())
			Expect(s.Step(c, 3, 1, 0, 0.1, rk.Buffer[float64](s))).To(Equal(3.0))
			Expect(c.Calls).To(BeZero())
		})
	})
})
