package simulation

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rrsched/process"
	"github.com/sarchlab/rrsched/scheduling"
)

func newScheduler(specs ...[3]int) *scheduling.RoundRobin {
	s, err := scheduling.NewRoundRobin(2)
	Expect(err).NotTo(HaveOccurred())

	for _, spec := range specs {
		p, err := process.New(spec[0], spec[1], spec[2])
		Expect(err).NotTo(HaveOccurred())
		Expect(s.AddProcess(p)).To(Succeed())
	}

	return s
}

var _ = Describe("Runner", func() {
	It("should run to completion without an interval", func() {
		r := NewRunner(newScheduler([3]int{1, 0, 3}, [3]int{2, 2, 2}), 0, nil)

		Expect(r.State()).To(Equal(Stopped))
		Expect(r.Run(context.Background())).To(Succeed())

		Expect(r.State()).To(Equal(Finished))
		Expect(r.Status()).To(Equal("finished"))
		Expect(r.Snapshot().Done()).To(BeTrue())
		Expect(r.Snapshot().Clock).To(Equal(5))

		Expect(r.Run(context.Background())).To(Succeed())
		Expect(r.Snapshot().Clock).To(Equal(5))
	})

	It("should step while stopped", func() {
		r := NewRunner(newScheduler([3]int{1, 0, 2}), 0, nil)

		more, err := r.StepOnce()
		Expect(err).NotTo(HaveOccurred())
		Expect(more).To(BeTrue())
		Expect(r.State()).To(Equal(Stopped))

		more, err = r.StepOnce()
		Expect(err).NotTo(HaveOccurred())
		Expect(more).To(BeFalse())
		Expect(r.State()).To(Equal(Finished))

		more, err = r.StepOnce()
		Expect(err).NotTo(HaveOccurred())
		Expect(more).To(BeFalse())
		Expect(r.Snapshot().Clock).To(Equal(2))
	})

	Context("with a paced run", func() {
		var (
			r      *Runner
			cancel context.CancelFunc
			result chan error
		)

		BeforeEach(func() {
			r = NewRunner(newScheduler([3]int{1, 0, 100000}),
				time.Millisecond, nil)

			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			result = make(chan error, 1)

			go func() { result <- r.Run(ctx) }()

			Eventually(r.State).Should(Equal(Running))
		})

		AfterEach(func() {
			cancel()
			Eventually(result).Should(Receive())
		})

		It("should refuse a second run and single steps", func() {
			Expect(r.Run(context.Background())).To(MatchError(ErrRunning))

			_, err := r.StepOnce()
			Expect(err).To(MatchError(ErrRunning))
		})

		It("should pause and continue", func() {
			r.Pause()
			Expect(r.State()).To(Equal(Paused))

			clock := r.Snapshot().Clock
			Consistently(func() int { return r.Snapshot().Clock },
				"30ms", "5ms").Should(Equal(clock))

			more, err := r.StepOnce()
			Expect(err).NotTo(HaveOccurred())
			Expect(more).To(BeTrue())
			Expect(r.Snapshot().Clock).To(Equal(clock + 1))

			r.Continue()
			Expect(r.State()).To(Equal(Running))
			Eventually(func() int { return r.Snapshot().Clock }).
				Should(BeNumerically(">", clock+1))
		})

		It("should stop when the context ends", func() {
			cancel()

			var err error
			Eventually(result).Should(Receive(&err))
			Expect(err).To(MatchError(context.Canceled))
			Expect(r.State()).To(Equal(Stopped))

			result <- nil
		})

		It("should stop while paused", func() {
			r.Pause()
			cancel()

			var err error
			Eventually(result).Should(Receive(&err))
			Expect(err).To(MatchError(context.Canceled))
			Expect(r.State()).To(Equal(Stopped))

			result <- nil
		})
	})
})
