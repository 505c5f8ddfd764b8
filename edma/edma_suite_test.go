package edma

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEDMA(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "eDMA Suite")
}
