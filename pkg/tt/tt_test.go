package tt

import (
	"fmt"
	"strings"
	"testing"
)

// testT implements the T interface and is used to verify the Test function's
// interaction with T.
type testT []string

func (t *testT) Helper() {}

func (t *testT) Errorf(format string, args ...any) {
	*t = append(*t, fmt.Sprintf(format, args...))
}

// Simple functions to test.

func add(x, y int) int {
	return x + y
}

func addsub(x int, y int) (int, int) {
	return x + y, x - y
}

func TestTTPass(t *testing.T) {
	var testT testT
	Test(&testT, Fn("addsub", addsub), Table{
		Args(1, 10).Rets(11, -9),
	})
	if len(testT) > 0 {
		t.Errorf("Test errors when test should pass")
	}
}

func TestTTFailDefaultFmtOneReturn(t *testing.T) {
	var testT testT
	Test(&testT,
		Fn("add", add),
		Table{Args(1, 10).Rets(12)},
	)
	assertError(t, testT, "add(1, 10) -> 11, want 12")
}

func TestTTFailDefaultFmtMultiReturn(t *testing.T) {
	var testT testT
	Test(&testT,
		Fn("addsub", addsub),
		Table{Args(1, 10).Rets(11, -90)},
	)
	assertError(t, testT, "addsub(1, 10) -> (11, -9), want (11, -90)")
}

func TestTTFailCustomFmt(t *testing.T) {
	var testT testT
	Test(&testT,
		Fn("addsub", addsub).ArgsFmt("x = %d, y = %d").RetsFmt("(a = %d, b = %d)"),
		Table{Args(1, 10).Rets(11, -90)},
	)
	assertError(t, testT,
		"addsub(x = 1, y = 10) -> (a = 11, b = -9), want (a = 11, b = -90)")
}

func TestTTAnyMatcher(t *testing.T) {
	var testT testT
	Test(&testT, Fn("add", add), Table{
		Args(1, 10).Rets(Any),
	})
	if len(testT) > 0 {
		t.Errorf("Test errors when test should pass")
	}
}

func assertError(t *testing.T, testT testT, want string) {
	t.Helper()
	if len(testT) == 0 {
		t.Fatalf("Test didn't error when it should have done so")
	}
	if testT[0] != want {
		t.Errorf("Test wrote message %q, want %q", testT[0], want)
	}
	// A cmp diff may follow the main message; anything beyond that is a bug.
	if len(testT) > 2 {
		t.Errorf("Test wrote too many error messages")
	}
	for _, msg := range testT[1:] {
		if !strings.HasPrefix(msg, "diff (-want +got):\n") {
			t.Errorf("unexpected extra message %q", msg)
		}
	}
}
