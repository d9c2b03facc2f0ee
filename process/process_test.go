package process

import (
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Process", func() {
	It("should start New with the full burst remaining", func() {
		p, err := New(1, 0, 3)

		Expect(err).NotTo(HaveOccurred())
		Expect(p.State).To(Equal(StateNew))
		Expect(p.RemainingTime).To(Equal(3))
		Expect(p.WaitTime).To(Equal(0))
		Expect(p.Priority.Valid).To(BeFalse())
		Expect(p.ResponseTime.Valid).To(BeFalse())
		Expect(p.StartTime.Valid).To(BeFalse())
		Expect(p.CompletionTime.Valid).To(BeFalse())
		Expect(p.TurnaroundTime().Valid).To(BeFalse())
	})

	It("should carry the priority", func() {
		p, err := NewWithPriority(2, 1, 4, 7)

		Expect(err).NotTo(HaveOccurred())
		Expect(p.Priority).To(Equal(Some(7)))
	})

	DescribeTable("should reject invalid parameters",
		func(id, arrival, burst int, field string) {
			_, err := New(id, arrival, burst)

			var vErr *ValidationError
			Expect(errors.As(err, &vErr)).To(BeTrue())
			Expect(vErr.Field).To(Equal(field))
		},
		Entry("zero burst", 1, 0, 0, "burst time"),
		Entry("negative burst", 1, 0, -2, "burst time"),
		Entry("negative arrival", 1, -1, 3, "arrival time"),
		Entry("zero id", 0, 0, 3, "id"),
	)

	It("should derive turnaround from completion", func() {
		p, _ := New(1, 2, 3)
		p.CompletionTime = Some(9)

		Expect(p.TurnaroundTime()).To(Equal(Some(7)))
	})

	It("should clone independently", func() {
		p, _ := New(1, 2, 3)
		c := p.Clone()
		c.RemainingTime = 0
		c.StartTime = Some(4)

		Expect(p.RemainingTime).To(Equal(3))
		Expect(p.StartTime.Valid).To(BeFalse())
	})

	It("should render names", func() {
		p, _ := New(12, 2, 3)

		Expect(p.Name()).To(Equal("P12"))
		Expect(p.String()).To(Equal("P12 (arrival 2, burst 3)"))
	})

	It("should encode unset optional fields as null", func() {
		p, _ := New(1, 0, 3)
		p.State = StateReady

		data, err := json.Marshal(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`"start_time":null`))
		Expect(string(data)).To(ContainSubstring(`"state":"Ready"`))

		var back Process
		Expect(json.Unmarshal(data, &back)).To(Succeed())
		Expect(back).To(Equal(*p))
	})
})

var _ = Describe("State", func() {
	DescribeTable("transitions",
		func(from, to State, legal bool) {
			Expect(from.CanTransitionTo(to)).To(Equal(legal))
		},
		Entry("admit", StateNew, StateReady, true),
		Entry("dispatch", StateReady, StateRunning, true),
		Entry("preempt", StateRunning, StateReady, true),
		Entry("finish", StateRunning, StateFinished, true),
		Entry("no new to running", StateNew, StateRunning, false),
		Entry("no ready to finished", StateReady, StateFinished, false),
		Entry("finished is terminal", StateFinished, StateReady, false),
	)

	It("should map codes both ways", func() {
		for _, s := range []State{StateReady, StateRunning, StateFinished} {
			back, ok := StateFromCode(s.Code())
			Expect(ok).To(BeTrue())
			Expect(back).To(Equal(s))
		}

		Expect(StateNew.Code()).To(BeEmpty())
		_, ok := StateFromCode("X")
		Expect(ok).To(BeFalse())
	})
})
