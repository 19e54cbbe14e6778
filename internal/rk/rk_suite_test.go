package rk_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRK(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RK Engine Suite")
}
