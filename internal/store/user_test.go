package store_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/relaypoint/telnetd/internal/store"
)

var _ = Describe("AdminUser Model", func() {
	var db *store.Store

	BeforeEach(func() {
		var err error
		db, err = store.New(":memory:", true)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("CreateAdminUser", func() {
		Context("with valid input", func() {
			It("creates a user successfully", func() {
				err := db.CreateAdminUser("testuser", "password123")
				Expect(err).NotTo(HaveOccurred())

				user, err := db.FindAdminUserByUsername("testuser")
				Expect(err).NotTo(HaveOccurred())
				Expect(user).NotTo(BeNil())
			})
		})

		Context("with a duplicate username", func() {
			It("returns an error", func() {
				_ = db.CreateAdminUser("dupe", "pass")
				err := db.CreateAdminUser("dupe", "pass")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("AuthenticateAdmin", func() {
		BeforeEach(func() {
			_ = db.CreateAdminUser("validuser", "secretpass")
		})

		It("authenticates with correct credentials", func() {
			user, err := db.AuthenticateAdmin("validuser", "secretpass")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Username).To(Equal("validuser"))
		})

		It("fails with incorrect password", func() {
			_, err := db.AuthenticateAdmin("validuser", "wrongpass")
			Expect(err).To(MatchError("invalid password"))
		})

		It("fails with unknown username", func() {
			_, err := db.AuthenticateAdmin("ghostinthemachine", "pass")
			Expect(err).To(MatchError("user not found"))
		})
	})

	Describe("SessionRecord", func() {
		It("opens and closes a record", func() {
			rec, err := db.OpenSessionRecord("127.0.0.1:5555")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.DisconnectedAt).To(BeNil())

			rec.TerminalType = "xterm"
			rec.Columns = 80
			rec.Rows = 24
			Expect(db.UpdateSessionRecord(rec)).To(Succeed())

			Expect(db.CloseSessionRecord(rec)).To(Succeed())
			Expect(rec.DisconnectedAt).NotTo(BeNil())

			recent, err := db.RecentSessionRecords(10)
			Expect(err).NotTo(HaveOccurred())
			Expect(recent).To(HaveLen(1))
			Expect(recent[0].TerminalType).To(Equal("xterm"))
		})
	})
})
