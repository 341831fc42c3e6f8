package schedule_test

import (
	"bytes"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rodfield/internal/field"
	"github.com/san-kum/rodfield/internal/layout"
	"github.com/san-kum/rodfield/internal/scene"
	"github.com/san-kum/rodfield/internal/schedule"
)

var _ = Describe("Scheduler", func() {
	var (
		clock    *schedule.ManualClock
		recorder *scene.Recorder
		logs     *bytes.Buffer
		sched    *schedule.Scheduler
	)

	BeforeEach(func() {
		clock = schedule.NewManualClock()
		recorder = scene.NewRecorder()
		logs = &bytes.Buffer{}
		logger := log.NewWithOptions(logs, log.Options{Level: log.DebugLevel})
		sched = schedule.New(recorder,
			schedule.WithClock(clock),
			schedule.WithLogger(logger),
			schedule.WithContainer(layout.Viewport{Width: 1000, Height: 800}),
		)
		sched.Start()
	})

	AfterEach(func() {
		sched.Close()
	})

	Describe("Start", func() {
		It("computes the field immediately and renders after the window", func() {
			st := sched.Status()
			Expect(st.Magnitude).To(BeNumerically("~", 12710.315, 1e-2))
			Expect(st.Error).To(BeEmpty())
			Expect(recorder.Clears()).To(Equal(0))

			clock.Advance(schedule.DefaultDelay)
			Expect(recorder.Clears()).To(Equal(1))
			Expect(sched.Status().Passes).To(Equal(1))
			Expect(sched.Status().Loading).To(BeFalse())
		})
	})

	Describe("parameter changes", func() {
		BeforeEach(func() {
			clock.Advance(schedule.DefaultDelay)
		})

		It("recomputes the magnitude and redraws the scene from scratch", func() {
			Expect(sched.Apply(field.FieldLength, "10")).To(Succeed())
			Expect(sched.Status().Magnitude).To(BeNumerically(">", 1.2713e4))

			clock.Advance(schedule.DefaultDelay)
			Expect(recorder.Clears()).To(Equal(2))
			Expect(recorder.Count(scene.KindLine)).To(Equal(1 + 20))
			Expect(recorder.Count(scene.KindMarker)).To(Equal(1))
		})

		It("reports unparseable input without touching the parameters", func() {
			before := sched.Status().Params
			err := sched.Apply(field.FieldDistance, "far")

			Expect(errors.Is(err, field.ErrInvalidParameter)).To(BeTrue())
			st := sched.Status()
			Expect(st.Params).To(Equal(before))
			Expect(st.Error).To(ContainSubstring("distance"))
			Expect(st.Magnitude).To(BeZero())
			Expect(logs.String()).To(ContainSubstring("invalid parameter"))
		})

		It("recovers on the next valid change", func() {
			_ = sched.Apply(field.FieldDistance, "far")
			Expect(sched.Apply(field.FieldDistance, "2")).To(Succeed())

			st := sched.Status()
			Expect(st.Error).To(BeEmpty())
			Expect(st.Magnitude).To(BeNumerically(">", 0))
		})

		It("zeroes the result and skips drawing for invalid geometry", func() {
			err := sched.SetParameters(field.Parameters{ChargeDensity: 1e-6, Length: 0, Distance: 1})
			Expect(err).To(MatchError(field.ErrInvalidParameter))

			st := sched.Status()
			Expect(st.Magnitude).To(BeZero())
			Expect(st.Error).NotTo(BeEmpty())

			Expect(func() { clock.Advance(schedule.DefaultDelay) }).NotTo(Panic())
			Expect(recorder.Clears()).To(Equal(1))
			Expect(sched.Status().Layout).To(BeNil())
		})

		It("keeps meters fixed across a unit toggle", func() {
			Expect(sched.Apply(field.FieldUnit, "cm")).To(Succeed())
			st := sched.Status()
			Expect(st.Params.Unit).To(Equal(field.Centimeters))
			Expect(st.Params.Length).To(Equal(field.DefaultLength))
			Expect(st.Magnitude).To(BeNumerically("~", 12710.315, 1e-2))

			clock.Advance(schedule.DefaultDelay)
			ticks := recorder.Shapes()[0].Axis.Ticks
			Expect(ticks[0].Label).To(HaveSuffix("cm"))
		})
	})

	Describe("resize", func() {
		BeforeEach(func() {
			clock.Advance(schedule.DefaultDelay)
		})

		It("collapses a burst into one pass with the last size", func() {
			for i := 0; i < 20; i++ {
				sched.Resize(float64(600+10*i), 700)
				clock.Advance(10 * time.Millisecond)
			}
			Expect(recorder.Clears()).To(Equal(1))

			clock.Advance(schedule.DefaultDelay)
			Expect(recorder.Clears()).To(Equal(2))

			st := sched.Status()
			Expect(st.Container.Width).To(Equal(790.0))
			Expect(st.Layout).NotTo(BeNil())
			Expect(st.Layout.Viewport.Width).To(Equal(790.0))
			Expect(st.Layout.Viewport.Height).To(BeNumerically("~", 420, 1e-9))
		})

		It("does not recompute the field", func() {
			before := logs.Len()
			sched.Resize(1200, 900)
			Expect(logs.String()[before:]).NotTo(ContainSubstring("field computed"))
		})

		It("shares the pending pass with parameter changes", func() {
			sched.Resize(700, 700)
			clock.Advance(100 * time.Millisecond)
			Expect(sched.Apply(field.FieldLength, "5")).To(Succeed())
			clock.Advance(100 * time.Millisecond)
			sched.Resize(800, 700)

			Expect(clock.Pending()).To(Equal(1))
			clock.Advance(schedule.DefaultDelay)
			Expect(recorder.Clears()).To(Equal(2))
			Expect(sched.Status().Layout.Viewport.Width).To(Equal(800.0))
		})

		It("clamps the viewport", func() {
			sched.Resize(3000, 3000)
			clock.Advance(schedule.DefaultDelay)
			vp := sched.Status().Layout.Viewport
			Expect(vp.Width).To(Equal(layout.MaxWidth))
			Expect(vp.Height).To(Equal(layout.MaxHeight))
		})
	})

	Describe("Flush", func() {
		It("renders the pending pass synchronously", func() {
			Expect(sched.Pending()).To(BeTrue())
			Expect(sched.Flush()).To(BeTrue())
			Expect(recorder.Clears()).To(Equal(1))
			Expect(sched.Pending()).To(BeFalse())

			clock.Advance(time.Second)
			Expect(recorder.Clears()).To(Equal(1))
		})
	})

	Describe("render hook", func() {
		It("receives the status after each pass", func() {
			var seen []schedule.Status
			s := schedule.New(scene.NewRecorder(),
				schedule.WithClock(clock),
				schedule.WithRenderHook(func(st schedule.Status) { seen = append(seen, st) }),
			)
			s.Start()
			clock.Advance(schedule.DefaultDelay)

			Expect(seen).To(HaveLen(1))
			Expect(seen[0].Passes).To(Equal(1))
			Expect(seen[0].KiloNewtons()).To(BeNumerically("~", 12.710315, 1e-5))
		})
	})
})
