package purefn_test

import (
	"errors"
	"fmt"
	"time"

	"github.com/on-the-ground/memoize_ive_go/purefn"
)

func ExampleMemoize() {
	calls := 0
	add := purefn.Memoize(func(args ...any) int {
		calls++
		sum := 0
		for _, a := range args {
			sum += a.(int)
		}
		return sum
	})

	fmt.Println(add(1, 2, 3))
	fmt.Println(add(1, 2, 3))
	fmt.Println(add(3, 2, 1))
	fmt.Println("calls:", calls)
	// Output:
	// 6
	// 6
	// 6
	// calls: 2
}

func ExampleMemoizeI1O1() {
	var fib func(int) int
	fib = purefn.MemoizeI1O1(func(n int) int {
		if n <= 1 {
			return n
		}
		return fib(n-1) + fib(n-2)
	})

	fmt.Println(fib(50))
	// Output: 12586269025
}

func ExampleMemoizeErr() {
	attempts := 0
	load := purefn.MemoizeErr(func(args ...any) (string, error) {
		attempts++
		if attempts == 1 {
			return "", errors.New("unavailable")
		}
		return fmt.Sprintf("config:%v", args[0]), nil
	}, purefn.WithTTL(time.Minute))

	_, err := load("app")
	fmt.Println(err)
	v, _ := load("app")
	fmt.Println(v)
	v, _ = load("app")
	fmt.Println(v, attempts)
	// Output:
	// unavailable
	// config:app
	// config:app 2
}
