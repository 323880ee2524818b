package domain_test

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"bank_ledger/internal/domain"
)

var _ = Describe("Account", func() {
	var account *domain.Account

	BeforeEach(func() {
		account = domain.NewAccount("Oscar", dec("1000.12345"))
	})

	AfterEach(func() {
		account = nil
	})

	Context("attributes", func() {
		It("keeps the owner and opening balance", func() {
			Expect(account.Owner()).To(Equal("Oscar"))
			Expect(account.Balance().String()).To(Equal("1000.12345"))
		})

		It("has a positive balance in the dev environment", func() {
			if os.Getenv("ENV") != "dev" {
				Skip("only checked with ENV=dev")
			}
			Expect(account.Balance().InexactFloat64()).To(Equal(1000.12345))
			Expect(account.Balance().IsNegative()).To(BeFalse())
			Expect(account.Balance().IsPositive()).To(BeTrue())
		})

		It("accepts a negative opening balance", func() {
			overdrawn := domain.NewAccount("Oscar", dec("-10"))
			Expect(overdrawn.Balance().String()).To(Equal("-10"))
		})

		It("has no bank until one is set", func() {
			Expect(account.Bank()).To(BeNil())

			bank := domain.NewBank()
			account.SetBank(bank)
			Expect(account.Bank()).To(BeIdenticalTo(bank))
		})
	})

	Context("operations", func() {
		It("debits the amount", func() {
			Expect(account.Debit(decimal.NewFromInt(100))).To(Succeed())
			Expect(account.Balance().IntPart()).To(Equal(int64(900)))
			Expect(account.Balance().String()).To(Equal("900.12345"))
		})

		It("credits the amount", func() {
			account.Credit(decimal.NewFromInt(100))
			Expect(account.Balance().IntPart()).To(Equal(int64(1100)))
			Expect(account.Balance().String()).To(Equal("1100.12345"))
		})

		It("debits the whole balance", func() {
			Expect(account.Debit(dec("1000.12345"))).To(Succeed())
			Expect(account.Balance().IsZero()).To(BeTrue())
		})

		It("credits without bound or sign checks", func() {
			account.Credit(dec("-0.12345"))
			Expect(account.Balance().String()).To(Equal("1000"))
		})
	})

	Context("when funds are insufficient", func() {
		It("fails the debit and leaves the balance unchanged", func() {
			err := account.Debit(decimal.NewFromInt(1500))

			Expect(err).To(HaveOccurred())
			Expect(err).To(MatchError("Insufficient funds"))
			Expect(errors.Is(err, domain.ErrInsufficientFunds)).To(BeTrue())
			Expect(account.Balance().String()).To(Equal("1000.12345"))
		})

		It("reports the requested and available amounts", func() {
			err := account.Debit(dec("1000.12346"))

			var insufficient *domain.InsufficientFundsError
			Expect(errors.As(err, &insufficient)).To(BeTrue())
			Expect(insufficient.Requested.String()).To(Equal("1000.12346"))
			Expect(insufficient.Available.String()).To(Equal("1000.12345"))
		})

		It("is still matched once wrapped", func() {
			err := errors.Wrap(account.Debit(decimal.NewFromInt(5000)), "paying rent")
			Expect(errors.Is(err, domain.ErrInsufficientFunds)).To(BeTrue())
			Expect(errors.Cause(err).Error()).To(Equal("Insufficient funds"))
		})
	})

	Context("equality", func() {
		It("never treats two accounts as equal by value", func() {
			other := domain.NewAccount("Oscar", dec("1000.12345"))

			Expect(account.Equal(other)).To(BeFalse())
			Expect(account.ID()).NotTo(Equal(other.ID()))
			Expect(account).NotTo(BeIdenticalTo(other))
		})

		It("is equal to itself", func() {
			Expect(account.Equal(account)).To(BeTrue())
		})

		It("handles nil accounts", func() {
			var missing *domain.Account
			Expect(missing.Equal(nil)).To(BeTrue())
			Expect(account.Equal(nil)).To(BeFalse())
		})
	})

	Describe("repeated debit", func() {
		const total = 5
		for i := 1; i <= total; i++ {
			repetition := i
			It(fmt.Sprintf("debits 100 - repetition %d of %d", repetition, total), func() {
				Expect(account.Debit(decimal.NewFromInt(100))).To(Succeed())
				Expect(account.Balance().IntPart()).To(Equal(int64(900)))
				Expect(account.Balance().String()).To(Equal("900.12345"))
			})
		}
	})

	DescribeTable("debits that the balance covers",
		func(amount float64) {
			Expect(account.Debit(decimal.NewFromFloat(amount))).To(Succeed())
			Expect(account.Balance().IsPositive()).To(BeTrue())
		},
		Entry("100", 100.0),
		Entry("200", 200.0),
		Entry("300", 300.0),
		Entry("500", 500.0),
		Entry("700", 700.0),
		Entry("1000", 1000.0),
	)

	DescribeTable("debit arithmetic",
		func(amount string, expectErr bool, want string) {
			before := account.Balance()
			err := account.Debit(dec(amount))
			if expectErr {
				Expect(err).To(MatchError("Insufficient funds"))
				Expect(account.Balance().Equal(before)).To(BeTrue())
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(account.Balance().Equal(before.Sub(dec(amount)))).To(BeTrue())
			Expect(account.Balance().String()).To(Equal(want))
		},
		Entry("zero", "0", false, "1000.12345"),
		Entry("smallest unit", "0.00001", false, "1000.12344"),
		Entry("exact balance", "1000.12345", false, "0"),
		Entry("one unit over", "1000.12346", true, ""),
		Entry("far over", "1500", true, ""),
	)

	DescribeTable("credit arithmetic",
		func(amount string, want string) {
			before := account.Balance()
			account.Credit(dec(amount))
			Expect(account.Balance().Equal(before.Add(dec(amount)))).To(BeTrue())
			Expect(account.Balance().String()).To(Equal(want))
		},
		Entry("zero", "0", "1000.12345"),
		Entry("whole", "100", "1100.12345"),
		Entry("fractional", "0.87655", "1001"),
		Entry("large", "1000000000000.5", "1000000001000.62345"),
	)

	Describe("concurrent use", func() {
		It("keeps every credit", func() {
			const workers = 100
			var wg sync.WaitGroup
			wg.Add(workers)
			for i := 0; i < workers; i++ {
				go func() {
					defer wg.Done()
					account.Credit(decimal.NewFromInt(1))
				}()
			}
			wg.Wait()

			Expect(account.Balance().String()).To(Equal("1100.12345"))
		})
	})

	Describe("platform conditional", func() {
		It("runs only on windows", func() {
			if runtime.GOOS != "windows" {
				Skip("windows only")
			}
			Expect(runtime.GOOS).To(Equal("windows"))
		})

		It("runs only on linux or mac", func() {
			if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
				Skip("linux and darwin only")
			}
			Expect([]string{"linux", "darwin"}).To(ContainElement(runtime.GOOS))
		})

		It("runs everywhere but windows", func() {
			if runtime.GOOS == "windows" {
				Skip("disabled on windows")
			}
			Expect(runtime.GOOS).NotTo(Equal("windows"))
		})

		It("runs only on 64-bit architectures", func() {
			if strings.Contains(runtime.GOARCH, "32") || runtime.GOARCH == "386" || runtime.GOARCH == "arm" {
				Skip("disabled on 32-bit architectures")
			}
			Expect(decimal.NewFromInt(1 << 40).IntPart()).To(Equal(int64(1 << 40)))
		})
	})

	Describe("environment conditional", func() {
		It("runs only in the dev environment", func() {
			if os.Getenv("ENVIRONMENT") != "dev" {
				Skip("ENVIRONMENT is not dev")
			}
			Expect(account.Debit(decimal.NewFromInt(1))).To(Succeed())
		})

		It("is disabled in the prod environment", func() {
			if os.Getenv("ENVIRONMENT") == "prod" {
				Skip("disabled in prod")
			}
			Expect(account.Debit(decimal.NewFromInt(1500))).To(HaveOccurred())
		})
	})
})
