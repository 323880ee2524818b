package domain_test

import (
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"bank_ledger/internal/domain"
)

var _ = Describe("Transfer", func() {
	var (
		origin      uuid.UUID
		destination uuid.UUID
		transfer    *domain.Transfer
	)

	BeforeEach(func() {
		origin = uuid.New()
		destination = uuid.New()
		transfer = domain.NewTransfer(origin, destination, dec("500"))
	})

	It("starts pending", func() {
		Expect(transfer.Status).To(Equal(domain.TransferPending))
		Expect(transfer.ID).NotTo(Equal(uuid.Nil))
		Expect(transfer.CreatedAt.IsZero()).To(BeFalse())
	})

	It("records completion", func() {
		transfer.Complete()
		Expect(transfer.Status).To(Equal(domain.TransferCompleted))
		Expect(transfer.FailureReason).To(BeEmpty())
	})

	It("records the failure reason", func() {
		transfer.Fail("Insufficient funds")
		Expect(transfer.Status).To(Equal(domain.TransferFailed))
		Expect(transfer.FailureReason).To(Equal("Insufficient funds"))
		Expect(transfer.UpdatedAt.Before(transfer.CreatedAt)).To(BeFalse())
	})

	It("involves only its two accounts", func() {
		Expect(transfer.Involves(origin)).To(BeTrue())
		Expect(transfer.Involves(destination)).To(BeTrue())
		Expect(transfer.Involves(uuid.New())).To(BeFalse())
	})
})
