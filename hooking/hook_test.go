package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("HookableBase", func() {
	var (
		mockCtrl *gomock.Controller
		domain   *HookableBase
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		domain = NewHookableBase()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should invoke hooks in registration order", func() {
		pos := &HookPos{Name: "Test"}
		ctx := HookCtx{Domain: domain, Pos: pos, Item: 1}

		hook1 := NewMockHook(mockCtrl)
		hook2 := NewMockHook(mockCtrl)
		domain.AcceptHook(hook1)
		domain.AcceptHook(hook2)

		gomock.InOrder(
			hook1.EXPECT().Func(ctx),
			hook2.EXPECT().Func(ctx),
		)

		domain.InvokeHook(ctx)

		Expect(domain.NumHooks()).To(Equal(2))
		Expect(domain.Hooks()).To(HaveLen(2))
	})

	It("should panic when the same hook is registered twice", func() {
		hook := NewMockHook(mockCtrl)
		domain.AcceptHook(hook)

		Expect(func() { domain.AcceptHook(hook) }).To(Panic())
	})

	It("should accept function hooks", func() {
		count := 0
		domain.AcceptHook(HookFunc(func(HookCtx) { count++ }))
		domain.AcceptHook(HookFunc(func(HookCtx) { count += 10 }))

		domain.InvokeHook(HookCtx{})

		Expect(count).To(Equal(11))
	})
})
