package ecology_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/predprey/internal/ecology"
	"github.com/san-kum/predprey/internal/integrators"
	"github.com/san-kum/predprey/internal/sim"
)

var _ = Describe("LotkaVolterra", func() {
	var lv *ecology.LotkaVolterra

	BeforeEach(func() {
		lv = ecology.New(ecology.DefaultParams())
	})

	Describe("the derivative function", func() {
		It("matches the hand-computed rates for the default scenario", func() {
			// dx/dt = 1.5*10 - 1*10*4 = -25, dy/dt = 1*10*4 - 3*4 = 28
			dx := lv.Derive(sim.State{10, 4}, 0)
			Expect(dx[0]).To(BeNumerically("~", -25.0, 1e-12))
			Expect(dx[1]).To(BeNumerically("~", 28.0, 1e-12))
		})

		It("vanishes at the equilibrium point", func() {
			eq := lv.Equilibrium()
			Expect(eq[0]).To(BeNumerically("~", 3.0, 1e-12))
			Expect(eq[1]).To(BeNumerically("~", 1.5, 1e-12))

			dx := lv.Derive(eq, 0)
			Expect(dx[0]).To(BeNumerically("~", 0.0, 1e-12))
			Expect(dx[1]).To(BeNumerically("~", 0.0, 1e-12))
		})

		It("is pure: repeated calls return identical values", func() {
			a := lv.Derive(sim.State{10, 4}, 0)
			b := lv.Derive(sim.State{10, 4}, 5)
			Expect(a).To(Equal(b))
		})
	})

	Describe("a simulation started at the fixed point", func() {
		It("remains at the fixed point for the whole horizon", func() {
			s := sim.New(lv, integrators.NewRK4())
			cfg := sim.Config{Dt: 0.01, Duration: 10.0, ValidateState: true}

			result, err := s.Run(context.Background(), lv.Equilibrium(), cfg)
			Expect(err).NotTo(HaveOccurred())

			_, final := result.Final()
			Expect(final[0]).To(BeNumerically("~", 3.0, 1e-9))
			Expect(final[1]).To(BeNumerically("~", 1.5, 1e-9))
		})
	})

	Describe("the conserved first integral", func() {
		It("stays nearly constant along an RK4 trajectory", func() {
			s := sim.New(lv, integrators.NewRK4())
			cfg := sim.Config{Dt: 0.01, Duration: 20.0, ValidateState: true}

			result, err := s.Run(context.Background(), lv.DefaultState(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.InvariantDrift).To(BeNumerically("<", 1e-5))
		})

		It("drifts visibly under explicit Euler at the same step size", func() {
			rk4, err := sim.New(lv, integrators.NewRK4()).
				Run(context.Background(), lv.DefaultState(), sim.Config{Dt: 0.01, Duration: 20.0})
			Expect(err).NotTo(HaveOccurred())

			euler, err := sim.New(lv, integrators.NewEuler()).
				Run(context.Background(), lv.DefaultState(), sim.Config{Dt: 0.01, Duration: 20.0})
			Expect(err).NotTo(HaveOccurred())

			Expect(euler.InvariantDrift).To(BeNumerically(">", 100*rk4.InvariantDrift))
		})
	})

	Describe("validation", func() {
		It("rejects a negative initial population", func() {
			err := lv.Validate(sim.State{-1, 4})
			Expect(err).To(MatchError(sim.ErrInvalidState))
		})

		It("rejects a wrongly sized initial state", func() {
			err := lv.Validate(sim.State{10})
			Expect(err).To(MatchError(sim.ErrInvalidState))
		})

		It("rejects a zero rate parameter", func() {
			bad := ecology.New(ecology.Params{Alpha: 0, Beta: 1, Gamma: 3, Delta: 1})
			err := bad.Validate(sim.State{10, 4})
			Expect(err).To(MatchError(sim.ErrInvalidParameter))
		})

		It("rejects negative rates before any stepping happens", func() {
			bad := ecology.New(ecology.Params{Alpha: 1.5, Beta: -1, Gamma: 3, Delta: 1})
			s := sim.New(bad, integrators.NewRK4())

			result, err := s.Run(context.Background(), sim.State{10, 4}, sim.Config{Dt: 0.01, Duration: 1.0})
			Expect(err).To(MatchError(sim.ErrInvalidParameter))
			Expect(result).To(BeNil())
		})

		It("accepts zero populations", func() {
			Expect(lv.Validate(sim.State{0, 0})).To(Succeed())
		})
	})

	Describe("named parameters", func() {
		It("round-trips through GetParams and SetParam", func() {
			Expect(lv.SetParam("alpha", 2.5)).To(Succeed())
			Expect(lv.GetParams()["alpha"]).To(Equal(2.5))
			Expect(lv.Params().Alpha).To(Equal(2.5))
		})

		It("rejects unknown parameter names", func() {
			err := lv.SetParam("sigma", 1.0)
			Expect(err).To(MatchError(sim.ErrInvalidParameter))
		})
	})
})
