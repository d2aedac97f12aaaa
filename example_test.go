package pythonic_test

import (
	"fmt"

	"github.com/jacoelho/pythonic"
	pyerrors "github.com/jacoelho/pythonic/errors"
)

func ExampleFastSum() {
	items := []pythonic.Value{
		pythonic.I32(1), pythonic.I32(2), pythonic.I32(3), pythonic.I32(4), pythonic.I32(5),
	}
	total, err := pythonic.FastSum(items, pythonic.I32(0))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(total.Repr(), total.Tag())

	items[2] = pythonic.F64(3)
	total, err = pythonic.FastSum(items, pythonic.I32(0))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(total.Repr(), total.Tag())
	// Output:
	// 15 I32
	// 15.0 F64
}

func ExampleMul() {
	ab, _ := pythonic.Add(pythonic.Str("ab"), pythonic.Str("cd"))
	twice, err := pythonic.Mul(ab, pythonic.I32(2))
	if err != nil {
		fmt.Println(err)
		return
	}
	h1, _ := twice.Hash()
	h2, _ := pythonic.Str("abcdabcd").Hash()
	fmt.Println(twice.Repr(), h1 == h2)
	// Output: 'abcdabcd' true
}

func ExampleBitOr() {
	left, _ := pythonic.ParseLiteral("{'a': 1, 'b': 2}")
	right, _ := pythonic.ParseLiteral("{'b': 20, 'c': 3}")
	merged, err := pythonic.BitOr(left, right)
	if err != nil {
		fmt.Println(err)
		return
	}
	n, _ := merged.Len()
	fmt.Println(n, merged.Repr())
	// Output: 3 {'a': 1, 'b': 20, 'c': 3}
}

func ExampleValue_Slice() {
	list, _ := pythonic.ParseLiteral("[1, 2, 3]")
	rev, err := list.Slice(pythonic.None(), pythonic.None(), pythonic.I32(-1))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(rev.Repr())
	// Output: [3, 2, 1]
}

func ExampleDiv() {
	_, err := pythonic.Div(pythonic.I32(-2147483648), pythonic.I32(-1))
	fmt.Println(pyerrors.IsKind(err, pyerrors.Overflow))
	// Output: true
}
