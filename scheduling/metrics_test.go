package scheduling

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rrsched/process"
)

var _ = Describe("Metrics", func() {
	It("should be empty without finished processes", func() {
		_, ok := computeMetrics(nil, 10, 5, 3)

		Expect(ok).To(BeFalse())
	})

	It("should report zero utilisation at tick zero", func() {
		Expect(CPUUtilization(0, 0)).To(Equal(0.0))
		Expect(CPUUtilization(3, 4)).To(BeNumerically("~", 75.0, 1e-9))
	})

	It("should average over finished processes only", func() {
		a := mustProcess(1, 0, 2)
		a.WaitTime = 2
		a.CompletionTime = process.Some(4)
		b := mustProcess(2, 1, 2)
		b.WaitTime = 5
		b.CompletionTime = process.Some(8)

		m, ok := computeMetrics([]*process.Process{a, b}, 10, 8, 3)

		Expect(ok).To(BeTrue())
		Expect(m).To(Equal(Metrics{
			TotalTime:         10,
			CPUUtilization:    80,
			AvgWaitTime:       3.5,
			AvgTurnaroundTime: 5.5,
			TotalProcesses:    3,
			FinishedCount:     2,
		}))
	})
})

var _ = Describe("History", func() {
	It("should keep a row for untracked codes and sort ticks", func() {
		h := make(History)
		h.record(3, 1, "E")
		h.record(1, 1, "L")
		h.record(2, 2, "")

		Expect(h.Ticks()).To(Equal([]int{1, 2, 3}))
		Expect(h.MaxTick()).To(Equal(3))
		Expect(h[2]).To(BeEmpty())
		Expect(h.At(2, 2)).To(BeEmpty())
		Expect(History{}.MaxTick()).To(Equal(-1))
	})

	It("should clone deeply", func() {
		h := History{0: {1: "E"}}
		c := h.Clone()
		c[0][1] = "L"

		Expect(h.At(0, 1)).To(Equal("E"))
	})
})
