package tracing

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/rrsched/process"
	"github.com/sarchlab/rrsched/scheduling"
)

func newScheduler(quantum int, specs ...[3]int) *scheduling.RoundRobin {
	s, err := scheduling.NewRoundRobin(quantum)
	Expect(err).NotTo(HaveOccurred())

	for _, spec := range specs {
		p, err := process.New(spec[0], spec[1], spec[2])
		Expect(err).NotTo(HaveOccurred())
		Expect(s.AddProcess(p)).To(Succeed())
	}

	return s
}

func drain(s *scheduling.RoundRobin) {
	for i := 0; s.Step(); i++ {
		Expect(i).To(BeNumerically("<", 10000))
	}
}

var _ = Describe("CollectTrace", func() {
	var (
		mockCtrl *gomock.Controller
		tracer   *MockTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		tracer = NewMockTracer(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should report wait and burst spans of a preempted process", func() {
		s := newScheduler(2, [3]int{1, 0, 3})
		CollectTrace(s, tracer)

		wait0 := Task{ID: "P1-wait@0", Kind: KindWait, What: "P1",
			Where: "ready_queue", PID: 1, StartTime: 0}
		burst0 := Task{ID: "P1-burst@0", Kind: KindBurst, What: "P1",
			Where: "cpu", PID: 1, StartTime: 0}
		wait2 := Task{ID: "P1-wait@2", Kind: KindWait, What: "P1",
			Where: "ready_queue", PID: 1, StartTime: 2}
		burst2 := Task{ID: "P1-burst@2", Kind: KindBurst, What: "P1",
			Where: "cpu", PID: 1, StartTime: 2}

		endOf := func(t Task, end int) Task {
			t.EndTime = end
			return t
		}

		gomock.InOrder(
			tracer.EXPECT().StartTask(wait0),
			tracer.EXPECT().EndTask(endOf(wait0, 0)),
			tracer.EXPECT().StartTask(burst0),
			tracer.EXPECT().EndTask(endOf(burst0, 2)),
			tracer.EXPECT().StartTask(wait2),
			tracer.EXPECT().EndTask(endOf(wait2, 2)),
			tracer.EXPECT().StartTask(burst2),
			tracer.EXPECT().EndTask(endOf(burst2, 3)),
		)

		drain(s)
	})

	It("should panic if the same tracer is attached twice", func() {
		s := newScheduler(2)
		CollectTrace(s, tracer)

		Expect(func() { CollectTrace(s, tracer) }).To(Panic())
	})
})

var _ = Describe("Tracers", func() {
	It("should sum bursts to the CPU busy ticks", func() {
		rng := rand.New(rand.NewSource(7))

		for round := 0; round < 20; round++ {
			var specs [][3]int
			n := rng.Intn(6) + 1
			for i := 1; i <= n; i++ {
				specs = append(specs, [3]int{i, rng.Intn(10), rng.Intn(6) + 1})
			}

			s := newScheduler(rng.Intn(4)+1, specs...)
			busy := NewBusyTimeTracer(KindIs(KindBurst))
			collector := NewTaskCollector(nil)
			CollectTrace(s, busy)
			CollectTrace(s, collector)

			drain(s)

			snap := s.Snapshot()
			Expect(busy.BusyTime()).To(Equal(snap.CPUBusyTicks))
			for _, spec := range specs {
				Expect(busy.BusyTimeOf(spec[0])).To(Equal(spec[2]))
			}

			for _, task := range collector.Tasks() {
				Expect(task.EndTime).To(BeNumerically(">=", task.StartTime))
				Expect(task.EndTime).To(BeNumerically("<=", snap.Clock))
			}
		}
	})

	It("should filter collected tasks", func() {
		s := newScheduler(1, [3]int{1, 0, 2}, [3]int{2, 0, 1})
		collector := NewTaskCollector(KindIs(KindBurst))
		CollectTrace(s, collector)

		drain(s)

		tasks := collector.Tasks()
		Expect(tasks).NotTo(BeEmpty())
		for _, task := range tasks {
			Expect(task.Kind).To(Equal(KindBurst))
			Expect(task.Where).To(Equal("cpu"))
		}
	})
})
