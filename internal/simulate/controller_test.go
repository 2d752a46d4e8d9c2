package simulate_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/echem-lab/echemsim/internal/analysis"
	"github.com/echem-lab/echemsim/internal/simulate"
	"github.com/echem-lab/echemsim/internal/technique"
)

var _ = Describe("Controller", func() {
	var (
		reg  *technique.Registry
		ctrl *simulate.Controller
	)

	BeforeEach(func() {
		reg = technique.NewRegistry()
		ctrl = simulate.New(reg, 42)
	})

	Describe("configuration", func() {
		It("rejects an unknown technique id", func() {
			err := ctrl.Configure("polarography", nil)
			Expect(err).To(MatchError(ContainSubstring("unknown technique")))
		})

		It("rejects equal potential bounds", func() {
			err := ctrl.Configure("cv", technique.Params{
				"startPotential": 0.1,
				"endPotential":   0.1,
			})
			Expect(err).To(HaveOccurred())
		})

		It("rejects a non-positive start frequency", func() {
			err := ctrl.Configure("eis", technique.Params{"startFrequency": 0})
			Expect(err).To(HaveOccurred())
		})

		It("refuses to start before being configured", func() {
			Expect(ctrl.Start()).To(HaveOccurred())
		})
	})

	Describe("running to completion", func() {
		BeforeEach(func() {
			Expect(ctrl.Configure("ca", technique.Params{"duration": 5})).To(Succeed())
		})

		It("advances progress monotonically and clamps at exactly 1", func() {
			Expect(ctrl.Start()).To(Succeed())

			prev := 0.0
			for !ctrl.Tick() {
				Expect(ctrl.Progress()).To(BeNumerically(">=", prev))
				prev = ctrl.Progress()
			}
			Expect(ctrl.Progress()).To(Equal(1.0))
			Expect(ctrl.State()).To(Equal(simulate.Completed))
		})

		It("appends points ordered by simulated time", func() {
			Expect(ctrl.Run()).To(Succeed())

			pts := ctrl.Series().Snapshot()
			Expect(len(pts)).To(BeNumerically(">", 10))
			for i := 1; i < len(pts); i++ {
				Expect(pts[i].Time).To(BeNumerically(">=", pts[i-1].Time))
			}
		})

		It("produces byte-identical series for identical seeds", func() {
			other := simulate.New(technique.NewRegistry(), 42)
			Expect(other.Configure("ca", technique.Params{"duration": 5})).To(Succeed())

			Expect(ctrl.Run()).To(Succeed())
			Expect(other.Run()).To(Succeed())

			Expect(ctrl.Series().Snapshot()).To(Equal(other.Series().Snapshot()))
		})

		It("produces a different series for a different seed", func() {
			other := simulate.New(technique.NewRegistry(), 7)
			Expect(other.Configure("ca", technique.Params{"duration": 5})).To(Succeed())

			Expect(ctrl.Run()).To(Succeed())
			Expect(other.Run()).To(Succeed())

			Expect(ctrl.Series().Snapshot()).NotTo(Equal(other.Series().Snapshot()))
		})
	})

	Describe("lifecycle transitions", func() {
		BeforeEach(func() {
			Expect(ctrl.Configure("cv", nil)).To(Succeed())
		})

		It("keeps the series across stop and resume", func() {
			Expect(ctrl.Start()).To(Succeed())
			for i := 0; i < 20; i++ {
				ctrl.Tick()
			}
			n := ctrl.Series().Len()
			Expect(n).To(Equal(20))

			ctrl.Stop()
			Expect(ctrl.State()).To(Equal(simulate.Idle))
			Expect(ctrl.Series().Len()).To(Equal(n))

			Expect(ctrl.Start()).To(Succeed())
			ctrl.Tick()
			Expect(ctrl.Series().Len()).To(Equal(n + 1))
		})

		It("clears the series when a shape parameter changes", func() {
			Expect(ctrl.Start()).To(Succeed())
			for i := 0; i < 20; i++ {
				ctrl.Tick()
			}
			ctrl.Stop()

			Expect(ctrl.Configure("cv", technique.Params{"scanRate": 0.1})).To(Succeed())
			Expect(ctrl.Series().Len()).To(Equal(0))
		})

		It("keeps the series when reconfigured identically", func() {
			Expect(ctrl.Start()).To(Succeed())
			for i := 0; i < 20; i++ {
				ctrl.Tick()
			}
			ctrl.Stop()

			Expect(ctrl.Configure("cv", nil)).To(Succeed())
			Expect(ctrl.Series().Len()).To(Equal(20))
		})

		It("clears everything on reset", func() {
			Expect(ctrl.Start()).To(Succeed())
			for i := 0; i < 20; i++ {
				ctrl.Tick()
			}
			ctrl.Reset()

			Expect(ctrl.Series().Len()).To(Equal(0))
			Expect(ctrl.Progress()).To(Equal(0.0))
			Expect(ctrl.State()).To(Equal(simulate.Idle))
		})
	})

	Describe("impedance sweeps", func() {
		It("samples the configured number of spectrum points", func() {
			Expect(ctrl.Configure("eis", nil)).To(Succeed())
			Expect(ctrl.Run()).To(Succeed())

			Expect(ctrl.Series().Len()).To(BeNumerically("~", ctrl.Config().Points, 1))

			pts := ctrl.Series().Snapshot()
			for _, p := range pts {
				Expect(p.Z).To(And(
					BeNumerically(">=", 0.1),
					BeNumerically("<=", 1e5),
				))
			}
		})
	})

	Describe("end-to-end analysis", func() {
		It("finds peaks in a completed cyclic voltammogram", func() {
			Expect(ctrl.Configure("cv", technique.Params{
				"startPotential": -0.5,
				"endPotential":   0.5,
				"temperature":    25,
				"electrodeArea":  1,
			})).To(Succeed())
			Expect(ctrl.Run()).To(Succeed())

			res, err := analysis.Analyze(ctrl.Descriptor(), ctrl.Series().Snapshot(), ctrl.Params())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Voltammetry).NotTo(BeNil())
			Expect(res.Voltammetry.PeakCurrents).NotTo(BeEmpty())
		})
	})
})
