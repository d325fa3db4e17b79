package rubidium_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rubidium"
	"rubidium/util/testutil"
)

var _ = Describe("Calibration", func() {
	var cal *rubidium.Calibration
	BeforeEach(func() {
		cal = rubidium.NewCalibration()
	})

	It("Should fall back to zero overhead while a class is cold", func() {
		Expect(cal.Overhead("count")).To(Equal(0.0))
		Expect(cal.Warmed("count")).To(BeFalse())
	})

	It("Should fall back to a positive small-sample clock estimate while cold", func() {
		Expect(cal.NowAvg("count")).To(BeNumerically(">", 0.0))
	})

	It("Should run the expensive passes exactly once per class", func() {
		rn, err := rubidium.NewCountRunner(10)
		Expect(err).ToNot(HaveOccurred())
		Expect(cal.Warm(rn)).To(Succeed())
		Expect(cal.Warmed("count")).To(BeTrue())
		Expect(cal.Passes("count")).To(Equal(1))
		Expect(cal.Warm(rn)).To(Succeed())
		Expect(cal.Passes("count")).To(Equal(1))
	})

	It("Should calibrate classes independently", func() {
		crn, _ := rubidium.NewCountRunner(10)
		Expect(cal.Warm(crn)).To(Succeed())
		Expect(cal.Warmed("count")).To(BeTrue())
		Expect(cal.Warmed("time")).To(BeFalse())
	})

	It("Should cache a non-negative overhead after warming", func() {
		rn, _ := rubidium.NewCountRunner(10)
		Expect(cal.Warm(rn)).To(Succeed())
		Expect(cal.Overhead("count")).To(BeNumerically(">=", 0.0))
		Expect(cal.NowAvg("count")).To(BeNumerically(">", 0.0))
	})

	It("Should warm implicitly on the first strategy run only", func() {
		rn, _ := rubidium.NewCountRunner(10)
		r, _ := rubidium.NewRun("bench_warm", nil)
		Expect(rn.Run(testutil.Noop(), r, cal)).To(Succeed())
		Expect(cal.Passes("count")).To(Equal(1))
		r2, _ := rubidium.NewRun("bench_warm", nil)
		Expect(rn.Run(testutil.Noop(), r2, cal)).To(Succeed())
		Expect(cal.Passes("count")).To(Equal(1))
	})
})
