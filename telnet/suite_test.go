package telnet_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTelnet(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Telnet Suite")
}
