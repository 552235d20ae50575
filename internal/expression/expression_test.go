package expression

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr bool
	}{
		{"plain", "x*x", false},
		{"printable edge", " ~", false},
		{"del accepted", "x\x7f", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"tab", "x\t+1", true},
		{"non-ascii", "x·2", true},
		{"high byte", "x\xff", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.source)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("Validate(%q) = %v, want ErrInvalidInput", tt.source, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate(%q) = %v", tt.source, err)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{"x*", "y+1", "sin(", "foo(x)", "x +* 2"} {
		_, err := Compile(src)
		if !errors.Is(err, ErrCompile) {
			t.Errorf("Compile(%q) = %v, want ErrCompile", src, err)
		}
	}
	if _, err := Compile("x\xe9"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("non-ASCII input: got %v, want ErrInvalidInput", err)
	}
}

func TestCompileImplicitProductHint(t *testing.T) {
	for _, src := range []string{"2x", "3(x+1)", "sin(2x)", "x + 0.5x"} {
		_, err := Compile(src)
		if !errors.Is(err, ErrCompile) {
			t.Fatalf("Compile(%q) error = %v, want ErrCompile", src, err)
		}
		if !strings.Contains(err.Error(), "2*x") {
			t.Errorf("Compile(%q) error %q has no hint", src, err)
		}
	}
	_, err := Compile("x2 +")
	if err == nil || strings.Contains(err.Error(), "2*x") {
		t.Errorf("unexpected hint for x2: %v", err)
	}
}

func TestEval(t *testing.T) {
	tests := []struct {
		source string
		x      float64
		want   float64
	}{
		{"x*x", 3, 9},
		{"x^2", -4, 16},
		{"x**3", 2, 8},
		{"2*x+1", 0.5, 2},
		{"3", 100, 3},
		{"sqrt(x)", 16, 4},
		{"sin(pi/2)", 0, 1},
		{"ln(e)", 0, 1},
		{"log10(x)", 1000, 3},
		{"abs(x)", -2.5, 2.5},
		{"pow(x, 3)", 3, 27},
		{"atan2(1, 1) * 4", 0, math.Pi},
		{"sign(x)", -7, -1},
		{"x % 2", 7.5, 1.5},
		{"x % 2.5", 6, 1},
		{"x % 2", -3, -1},
		{"7 % x", 2, 1},
		{"7 % 2", 0, 1},
		{"(x % 3) % 2", 8, 0},
		{"fmod(x, 4)", 9, 1},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			e, err := Compile(tt.source)
			if err != nil {
				t.Fatal(err)
			}
			got := e.Eval(tt.x)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("%s at x=%v = %v, want %v", tt.source, tt.x, got, tt.want)
			}
		})
	}
}

func TestEvalUndefined(t *testing.T) {
	inv := MustCompile("1/x")
	if y := inv.Eval(0); !math.IsInf(y, 1) {
		t.Errorf("1/x at 0 = %v, want +Inf", y)
	}
	if Defined(inv.Eval(0)) {
		t.Error("1/x should be undefined at 0")
	}
	if y := inv.Eval(0.01); math.Abs(y-100) > 1e-9 {
		t.Errorf("1/x at 0.01 = %v, want 100", y)
	}
	if Defined(MustCompile("x % 0").Eval(3)) {
		t.Error("x % 0 should be undefined")
	}
	root := MustCompile("sqrt(x)")
	if Defined(root.Eval(-1)) {
		t.Error("sqrt(x) should be undefined at -1")
	}
}

func TestEvalConcurrent(t *testing.T) {
	e := MustCompile("x*x")
	var wg sync.WaitGroup
	errs := make(chan float64, 8)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				x := float64(w*1000 + i)
				if y := e.Eval(x); y != x*x {
					errs <- x
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for x := range errs {
		t.Errorf("wrong result for x=%v under concurrent evaluation", x)
	}
}

func TestSource(t *testing.T) {
	e := MustCompile("x + 1")
	if e.Source() != "x + 1" || e.String() != "x + 1" {
		t.Errorf("Source() = %q", e.Source())
	}
}

func TestFunctionNamesSorted(t *testing.T) {
	names := FunctionNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
