package bn_test

import (
	"fmt"

	"github.com/matzehuels/bnclimb/pkg/bn"
	"github.com/matzehuels/bnclimb/pkg/data"
)

func ExampleNetwork_AddParent() {
	ds, _ := data.New("weather", []data.Attribute{
		{Name: "outlook", Values: []string{"sunny", "rainy"}},
		{Name: "windy", Values: []string{"yes", "no"}},
		{Name: "play", Values: []string{"yes", "no"}},
	}, 2)

	net := bn.New(ds)
	_ = net.AddParent(0, 2) // play -> outlook
	_ = net.AddParent(1, 2) // play -> windy

	// Closing a cycle is refused before the arc is committed.
	err := net.AddParent(2, 0)
	fmt.Println(err)
	fmt.Println(net.ArcCount())
	// Output:
	// arc would create a cycle
	// 2
}

func ExampleNetwork_CopyFrom() {
	ds, _ := data.New("tiny", []data.Attribute{
		{Name: "a", Values: []string{"0", "1"}},
		{Name: "b", Values: []string{"0", "1"}},
	}, 1)

	src := bn.New(ds)
	_ = src.AddParent(0, 1)

	dst := bn.New(ds)
	_ = dst.CopyFrom(src)

	src.ClearParents()
	fmt.Println(dst.HasParent(0, 1))
	// Output:
	// true
}
