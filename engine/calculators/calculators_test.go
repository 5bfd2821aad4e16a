package calculators_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/calculators"
)

var _ = Describe("StudentAidIndex", func() {
	It("should compute the index from family finances", func() {
		// allowance 25000 + 3*7000 = 46000; available 39000
		// 39000*0.47 + 40000*0.12 = 23130, one student in college
		index, err := StudentAidIndex(85000, 40000, 4, 1)
		Expect(err).ToNot(HaveOccurred())
		Expect(index).To(BeNumerically("~", 23130, 0.01))
	})

	It("should split the index across students in college", func() {
		one, err := StudentAidIndex(85000, 40000, 4, 1)
		Expect(err).ToNot(HaveOccurred())
		two, err := StudentAidIndex(85000, 40000, 4, 2)
		Expect(err).ToNot(HaveOccurred())
		Expect(two).To(BeNumerically("~", one/2, 0.01))
	})

	It("should clamp available income at zero for low incomes", func() {
		// income below the allowance leaves only the asset assessment
		index, err := StudentAidIndex(20000, 10000, 3, 1)
		Expect(err).ToNot(HaveOccurred())
		Expect(index).To(BeNumerically("~", 1200, 0.01))
	})

	It("should reject negative income", func() {
		_, err := StudentAidIndex(-1, 0, 2, 1)
		Expect(err).To(MatchError(ErrInvalidInput))
	})

	It("should reject negative assets", func() {
		_, err := StudentAidIndex(50000, -1, 2, 1)
		Expect(err).To(MatchError(ErrInvalidInput))
	})

	It("should reject a family size below one", func() {
		_, err := StudentAidIndex(50000, 0, 0, 1)
		Expect(err).To(MatchError(ErrInvalidInput))
	})

	It("should reject zero students in college", func() {
		_, err := StudentAidIndex(50000, 0, 3, 0)
		Expect(err).To(MatchError(ErrInvalidInput))
	})

	It("should reject more students in college than family members", func() {
		_, err := StudentAidIndex(50000, 0, 2, 3)
		Expect(err).To(MatchError(ErrInvalidInput))
	})
})

var _ = Describe("CostOfAttendance", func() {
	It("should sum every budget component", func() {
		total, err := CostOfAttendance(CostComponents{
			Tuition:        30000,
			Fees:           1200,
			Housing:        10000,
			Food:           5000,
			Books:          800,
			Personal:       1500,
			Transportation: 500,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(total).To(BeNumerically("~", 49000, 0.01))
	})

	It("should allow missing components", func() {
		total, err := CostOfAttendance(CostComponents{Tuition: 30000, Fees: 1200})
		Expect(err).ToNot(HaveOccurred())
		Expect(total).To(BeNumerically("~", 31200, 0.01))
	})

	It("should reject any negative component", func() {
		_, err := CostOfAttendance(CostComponents{Tuition: 30000, Housing: -1})
		Expect(err).To(MatchError(ErrInvalidInput))
	})
})

var _ = Describe("NetPrice", func() {
	It("should subtract gift aid from the cost of attendance", func() {
		net, err := NetPrice(41200, 15000)
		Expect(err).ToNot(HaveOccurred())
		Expect(net).To(BeNumerically("~", 26200, 0.01))
	})

	It("should reject gift aid exceeding the cost of attendance", func() {
		_, err := NetPrice(10000, 10001)
		Expect(err).To(MatchError(ErrInvalidInput))
	})

	It("should reject negative inputs", func() {
		_, err := NetPrice(-1, 0)
		Expect(err).To(MatchError(ErrInvalidInput))
		_, err = NetPrice(10000, -1)
		Expect(err).To(MatchError(ErrInvalidInput))
	})
})
