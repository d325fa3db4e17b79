package rubidium_test

import (
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rubidium"
)

var _ = Describe("Run", func() {
	Describe("NewRun", func() {
		It("Should reject an empty name with a naming error", func() {
			_, err := rubidium.NewRun("", nil)
			Expect(err).To(HaveOccurred())
			var rErr rubidium.Error
			Expect(errors.As(err, &rErr)).To(BeTrue())
			Expect(rErr.Type).To(Equal(rubidium.ErrNaming))
		})
		It("Should start with every measured field unset", func() {
			r, err := rubidium.NewRun("root", nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(r.Start.IsSet()).To(BeFalse())
			Expect(r.End.IsSet()).To(BeFalse())
			Expect(r.Runs).To(Equal(0))
			Expect(math.IsNaN(r.Avg)).To(BeTrue())
		})
		It("Should assign a distinct key per run", func() {
			a, _ := rubidium.NewRun("a", nil)
			b, _ := rubidium.NewRun("b", nil)
			Expect(a.Key.String()).ToNot(Equal(b.Key.String()))
		})
	})

	Describe("Hierarchy", func() {
		It("Should round-trip a three level chain through NameFull and Level", func() {
			top, _ := rubidium.NewRun("top", nil)
			mid, _ := rubidium.NewRun("mid", top)
			low, _ := rubidium.NewRun("low", mid)
			Expect(top.Level()).To(Equal(0))
			Expect(mid.Level()).To(Equal(1))
			Expect(low.Level()).To(Equal(2))
			Expect(low.NameFull()).To(Equal("top/mid/low"))
		})
	})

	Describe("Done", func() {
		It("Should set end, runs and the raw average", func() {
			r, _ := rubidium.NewRun("r", nil)
			r.Start = 100
			Expect(r.Done(1100, 10)).To(Succeed())
			Expect(r.Time()).To(Equal(rubidium.TimeSpan(1000)))
			Expect(r.Avg).To(Equal(100.0))
			Expect(r.ReqDone()).To(Succeed())
		})
		It("Should reject a non-positive end and leave state unchanged", func() {
			r, _ := rubidium.NewRun("r", nil)
			r.Start = 100
			err := r.Done(rubidium.TimeStampUnset, 10)
			var rErr rubidium.Error
			Expect(errors.As(err, &rErr)).To(BeTrue())
			Expect(rErr.Type).To(Equal(rubidium.ErrContract))
			Expect(r.End.IsSet()).To(BeFalse())
			Expect(r.Runs).To(Equal(0))
			Expect(math.IsNaN(r.Avg)).To(BeTrue())
		})
		It("Should reject a non-positive run count and leave state unchanged", func() {
			r, _ := rubidium.NewRun("r", nil)
			r.Start = 100
			err := r.Done(200, 0)
			var rErr rubidium.Error
			Expect(errors.As(err, &rErr)).To(BeTrue())
			Expect(rErr.Type).To(Equal(rubidium.ErrContract))
			Expect(r.Runs).To(Equal(0))
		})
		It("Should reject an end before start", func() {
			r, _ := rubidium.NewRun("r", nil)
			r.Start = 200
			Expect(r.Done(100, 1)).ToNot(Succeed())
		})
	})

	Describe("ReqDone", func() {
		It("Should raise an internal error on an unpopulated run", func() {
			r, _ := rubidium.NewRun("r", nil)
			err := r.ReqDone()
			var rErr rubidium.Error
			Expect(errors.As(err, &rErr)).To(BeTrue())
			Expect(rErr.Type).To(Equal(rubidium.ErrInternal))
		})
	})

	Describe("Elapsed", func() {
		It("Should track an in-flight run against the live clock", func() {
			r, _ := rubidium.NewRun("r", nil)
			r.Start = rubidium.Now()
			time.Sleep(time.Millisecond)
			Expect(r.Elapsed()).To(BeNumerically(">=", rubidium.Millisecond))
		})
		It("Should use the recorded end once set", func() {
			r, _ := rubidium.NewRun("r", nil)
			r.Start = 100
			Expect(r.Done(300, 1)).To(Succeed())
			Expect(r.Elapsed()).To(Equal(rubidium.TimeSpan(200)))
		})
	})

	Describe("Reset", func() {
		It("Should clear all measured fields back to unset", func() {
			r, _ := rubidium.NewRun("r", nil)
			r.Start = 100
			Expect(r.Done(200, 4)).To(Succeed())
			r.Reset()
			Expect(r.Start.IsSet()).To(BeFalse())
			Expect(r.End.IsSet()).To(BeFalse())
			Expect(r.Runs).To(Equal(0))
			Expect(math.IsNaN(r.Avg)).To(BeTrue())
		})
	})
})

var _ = Describe("TimeStamp", func() {
	It("Should read a non-decreasing monotonic clock", func() {
		a := rubidium.Now()
		b := rubidium.Now()
		Expect(b.Before(a)).To(BeFalse())
	})
	It("Should convert spans to durations", func() {
		Expect(rubidium.Millisecond.Duration()).To(Equal(time.Millisecond))
	})
})
