package sim

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("SerialEngine", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *SerialEngine
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewSerialEngine()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	makeEvent := func(
		t VTimeInYear,
		handler Handler,
	) *MockEvent {
		evt := NewMockEvent(mockCtrl)
		evt.EXPECT().Time().Return(t).AnyTimes()
		evt.EXPECT().Handler().Return(handler).AnyTimes()

		return evt
	}

	It("should schedule events", func() {
		handler1 := NewMockHandler(mockCtrl)
		handler2 := NewMockHandler(mockCtrl)
		evt1 := makeEvent(4.0, handler1)
		evt2 := makeEvent(2.0, handler2)
		evt3 := makeEvent(3.0, handler1)
		evt4 := makeEvent(5.0, handler1)

		handleEvt2 := handler2.EXPECT().Handle(evt2).Do(func(e Event) {
			engine.Schedule(evt3)
			engine.Schedule(evt4)
		})
		handleEvt3 := handler1.EXPECT().Handle(evt3).After(handleEvt2)
		handleEvt1 := handler1.EXPECT().Handle(evt1).After(handleEvt3)
		handler1.EXPECT().Handle(evt4).After(handleEvt1)

		engine.Schedule(evt1)
		engine.Schedule(evt2)

		Expect(engine.Run()).To(Succeed())
		Expect(engine.CurrentTime()).To(Equal(VTimeInYear(5.0)))
	})

	It("should run same-time events in scheduling order", func() {
		handler1 := NewMockHandler(mockCtrl)
		handler2 := NewMockHandler(mockCtrl)
		handler3 := NewMockHandler(mockCtrl)
		evt1 := makeEvent(2.0, handler1)
		evt2 := makeEvent(2.0, handler2)
		evt3 := makeEvent(2.0, handler3)
		evt4 := makeEvent(2.0, handler1)

		handleEvt1 := handler1.EXPECT().Handle(evt1).Do(func(e Event) {
			engine.Schedule(evt4)
		})
		handleEvt2 := handler2.EXPECT().Handle(evt2).After(handleEvt1)
		handleEvt3 := handler3.EXPECT().Handle(evt3).After(handleEvt2)
		handler1.EXPECT().Handle(evt4).After(handleEvt3)

		engine.Schedule(evt1)
		engine.Schedule(evt2)
		engine.Schedule(evt3)

		Expect(engine.Run()).To(Succeed())
		Expect(engine.CurrentTime()).To(Equal(VTimeInYear(2.0)))
	})

	It("should stop at the first handler error", func() {
		handler := NewMockHandler(mockCtrl)
		evt1 := makeEvent(1.0, handler)
		evt2 := makeEvent(2.0, handler)
		failure := errors.New("singular")

		handler.EXPECT().Handle(evt1).Return(failure)

		engine.Schedule(evt1)
		engine.Schedule(evt2)

		err := engine.Run()

		Expect(err).To(MatchError(failure))
		Expect(engine.CurrentTime()).To(Equal(VTimeInYear(1.0)))
	})

	It("should panic when scheduling an event in the past", func() {
		handler := NewMockHandler(mockCtrl)
		evt1 := makeEvent(3.0, handler)
		evt2 := makeEvent(1.0, handler)

		handler.EXPECT().Handle(evt1)
		engine.Schedule(evt1)
		Expect(engine.Run()).To(Succeed())

		Expect(func() { engine.Schedule(evt2) }).To(Panic())
	})

	It("should invoke hooks around each event", func() {
		handler := NewMockHandler(mockCtrl)
		hook := NewMockHook(mockCtrl)
		evt := makeEvent(1.0, handler)
		engine.AcceptHook(hook)

		before := hook.EXPECT().Func(gomock.Any()).Do(func(ctx HookCtx) {
			Expect(ctx.Pos).To(BeIdenticalTo(HookPosBeforeEvent))
			Expect(ctx.Item).To(BeIdenticalTo(evt))
		})
		handle := handler.EXPECT().Handle(evt).After(before)
		hook.EXPECT().Func(gomock.Any()).Do(func(ctx HookCtx) {
			Expect(ctx.Pos).To(BeIdenticalTo(HookPosAfterEvent))
		}).After(handle)

		engine.Schedule(evt)

		Expect(engine.Run()).To(Succeed())
	})

	It("should reject duplicated hooks", func() {
		hook := NewMockHook(mockCtrl)
		engine.AcceptHook(hook)

		Expect(func() { engine.AcceptHook(hook) }).To(Panic())
		Expect(engine.NumHooks()).To(Equal(1))
	})

	It("should call simulation end handlers when finished", func() {
		handler := NewMockHandler(mockCtrl)
		endHandler := NewMockSimulationEndHandler(mockCtrl)
		evt := makeEvent(7.5, handler)

		handler.EXPECT().Handle(evt)
		endHandler.EXPECT().Handle(VTimeInYear(7.5))

		engine.RegisterSimulationEndHandler(endHandler)
		engine.Schedule(evt)
		Expect(engine.Run()).To(Succeed())

		engine.Finished()
	})
})
