package scheduling

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rrsched/process"
)

func mustProcess(id, arrival, burst int) *process.Process {
	p, err := process.New(id, arrival, burst)
	Expect(err).NotTo(HaveOccurred())

	return p
}

func mustScheduler(quantum int, procs ...*process.Process) *RoundRobin {
	s, err := NewRoundRobin(quantum)
	Expect(err).NotTo(HaveOccurred())

	for _, p := range procs {
		Expect(s.AddProcess(p)).To(Succeed())
	}

	return s
}

func runToEnd(s *RoundRobin) int {
	steps := 1
	for s.Step() {
		steps++
		Expect(steps).To(BeNumerically("<", 10000))
	}

	return steps
}

var _ = Describe("RoundRobin", func() {
	DescribeTable("should reject a non-positive quantum",
		func(quantum int) {
			s, err := NewRoundRobin(quantum)

			Expect(s).To(BeNil())
			var cErr *ConfigError
			Expect(errors.As(err, &cErr)).To(BeTrue())
			Expect(cErr.Quantum).To(Equal(quantum))
		},
		Entry("zero", 0),
		Entry("negative", -3),
	)

	It("should use the default quantum", func() {
		s, err := MakeBuilder().Build()

		Expect(err).NotTo(HaveOccurred())
		Expect(s.Quantum()).To(Equal(DefaultQuantum))
	})

	Context("single process", func() {
		var s *RoundRobin

		BeforeEach(func() {
			s = mustScheduler(2, mustProcess(1, 0, 3))
		})

		It("should run the process to completion", func() {
			Expect(s.Step()).To(BeTrue())
			snap := s.Snapshot()
			Expect(snap.Running.ID).To(Equal(1))
			Expect(snap.Running.RemainingTime).To(Equal(2))

			Expect(s.Step()).To(BeTrue())
			snap = s.Snapshot()
			Expect(snap.Running).To(BeNil())
			Expect(snap.ReadyQueue).To(Equal([]int{1}))
			Expect(snap.Processes[0].RemainingTime).To(Equal(1))
			Expect(snap.Processes[0].State).To(Equal(process.StateReady))

			Expect(s.Step()).To(BeFalse())

			p := s.Snapshot().Processes[0]
			Expect(p.State).To(Equal(process.StateFinished))
			Expect(p.RemainingTime).To(Equal(0))
			Expect(p.CompletionTime).To(Equal(process.Some(3)))
			Expect(p.TurnaroundTime()).To(Equal(process.Some(3)))
			Expect(p.ResponseTime).To(Equal(process.Some(0)))
			Expect(p.StartTime).To(Equal(process.Some(0)))
			Expect(p.WaitTime).To(Equal(2))
		})

		It("should record the process as running on every tick", func() {
			runToEnd(s)

			Expect(s.Snapshot().History).To(Equal(History{
				0: {1: "E"},
				1: {1: "E"},
				2: {1: "E"},
			}))
		})

		It("should be a no-op after completion", func() {
			runToEnd(s)
			before := s.Snapshot()

			Expect(s.Step()).To(BeFalse())
			Expect(s.Step()).To(BeFalse())

			Expect(s.Snapshot()).To(Equal(before))
			Expect(s.Done()).To(BeTrue())
		})

		It("should refuse processes after completion", func() {
			runToEnd(s)

			err := s.AddProcess(mustProcess(2, 10, 1))
			Expect(err).To(MatchError(ErrSimulationDone))
		})
	})

	Context("two processes arriving together", func() {
		var s *RoundRobin

		BeforeEach(func() {
			s = mustScheduler(2, mustProcess(1, 0, 3), mustProcess(2, 0, 2))
		})

		It("should interleave at the quantum boundary", func() {
			running := []int{}
			for {
				more := s.Step()
				snap := s.Snapshot()
				tick := snap.Clock - 1
				for id, code := range snap.History[tick] {
					if code == "E" {
						running = append(running, id)
					}
				}

				if !more {
					break
				}
			}

			Expect(running).To(Equal([]int{1, 1, 2, 2, 1}))
		})

		It("should report final statistics", func() {
			runToEnd(s)
			snap := s.Snapshot()

			Expect(snap.Finished).To(HaveLen(2))
			Expect(snap.Finished[0].ID).To(Equal(2))
			Expect(snap.Finished[1].ID).To(Equal(1))

			p1, _ := snap.Process(1)
			p2, _ := snap.Process(2)
			Expect(p1.CompletionTime).To(Equal(process.Some(5)))
			Expect(p2.CompletionTime).To(Equal(process.Some(4)))
			Expect(p1.StartTime).To(Equal(process.Some(0)))
			Expect(p2.StartTime).To(Equal(process.Some(2)))
			Expect(p1.WaitTime).To(Equal(4))
			Expect(p2.WaitTime).To(Equal(3))

			Expect(snap.CPUBusyTicks).To(Equal(5))
			Expect(snap.Clock).To(Equal(5))

			m, ok := s.Metrics()
			Expect(ok).To(BeTrue())
			Expect(m.CPUUtilization).To(BeNumerically("~", 100.0, 1e-9))
			Expect(m.AvgWaitTime).To(BeNumerically("~", 3.5, 1e-9))
			Expect(m.AvgTurnaroundTime).To(BeNumerically("~", 4.5, 1e-9))
			Expect(m.TotalTime).To(Equal(5))
			Expect(m.TotalProcesses).To(Equal(2))
			Expect(m.FinishedCount).To(Equal(2))
		})
	})

	Context("late arrival", func() {
		var s *RoundRobin

		BeforeEach(func() {
			s = mustScheduler(2, mustProcess(1, 3, 1))
		})

		It("should idle until the process arrives", func() {
			for i := 0; i < 3; i++ {
				Expect(s.Step()).To(BeTrue())
				_, ok := s.Metrics()
				Expect(ok).To(BeFalse())
			}

			snap := s.Snapshot()
			Expect(snap.Clock).To(Equal(3))
			Expect(snap.CPUBusyTicks).To(Equal(0))
			Expect(snap.History).To(Equal(History{0: {}, 1: {}, 2: {}}))

			Expect(s.Step()).To(BeFalse())

			p := s.Snapshot().Processes[0]
			Expect(p.ResponseTime).To(Equal(process.Some(0)))
			Expect(p.StartTime).To(Equal(process.Some(3)))
			Expect(p.CompletionTime).To(Equal(process.Some(4)))
			Expect(p.WaitTime).To(Equal(1))

			m, ok := s.Metrics()
			Expect(ok).To(BeTrue())
			Expect(m.CPUUtilization).To(BeNumerically("~", 25.0, 1e-9))
		})

		It("should accept processes until their arrival tick is scanned", func() {
			s.Step()
			s.Step()

			Expect(s.AddProcess(mustProcess(2, 2, 1))).To(Succeed())

			err := s.AddProcess(mustProcess(3, 1, 1))
			Expect(errors.Is(err, ErrAlreadyStarted)).To(BeTrue())
		})
	})

	It("should keep finished processes marked in later ticks", func() {
		s := mustScheduler(3, mustProcess(1, 0, 1), mustProcess(2, 0, 2))
		runToEnd(s)

		h := s.Snapshot().History
		Expect(h.At(0, 1)).To(Equal("E"))
		Expect(h.At(0, 2)).To(Equal("L"))
		Expect(h.At(1, 1)).To(Equal("F"))
		Expect(h.At(1, 2)).To(Equal("E"))
		Expect(h.At(2, 1)).To(Equal("F"))
		Expect(h.At(2, 2)).To(Equal("E"))
	})

	It("should finish immediately with no processes", func() {
		s := mustScheduler(2)

		Expect(s.Step()).To(BeFalse())
		Expect(s.Clock()).To(Equal(1))
		_, ok := s.Metrics()
		Expect(ok).To(BeFalse())
		Expect(s.Snapshot().History).To(Equal(History{0: {}}))
	})

	It("should keep one history row per tick", func() {
		s := mustScheduler(2, mustProcess(1, 2, 1))
		runToEnd(s)

		h := s.Snapshot().History
		Expect(s.Clock()).To(Equal(3))
		Expect(h.Ticks()).To(Equal([]int{0, 1, 2}))
		Expect(h[0]).To(BeEmpty())
		Expect(h[1]).To(BeEmpty())
		Expect(h.At(2, 1)).To(Equal("E"))
	})

	It("should refuse processes that already left New", func() {
		s := mustScheduler(2)
		p := mustProcess(1, 0, 1)
		p.State = process.StateReady

		Expect(errors.Is(s.AddProcess(p), ErrProcessNotNew)).To(BeTrue())
	})

	It("should not be affected by the caller mutating an added process", func() {
		p := mustProcess(1, 0, 2)
		s := mustScheduler(2, p)

		p.RemainingTime = 100
		p.ArrivalTime = 50
		runToEnd(s)

		Expect(s.Snapshot().Processes[0].CompletionTime).
			To(Equal(process.Some(2)))
	})

	It("should replay deterministically", func() {
		build := func() *RoundRobin {
			f, err := process.MakeFactoryBuilder().WithSeed(99).Build()
			Expect(err).NotTo(HaveOccurred())

			return mustScheduler(3, f.CreateRandomBatch(8)...)
		}

		a, b := build(), build()
		runToEnd(a)
		runToEnd(b)

		Expect(a.Snapshot().History).To(Equal(b.Snapshot().History))
		ma, _ := a.Metrics()
		mb, _ := b.Metrics()
		Expect(ma).To(Equal(mb))
	})
})
