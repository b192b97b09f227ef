package mbst

import (
	"fmt"
)

func ExampleNew_rootHash() {
	tr, err := New()
	if err != nil {
		panic(err)
	}
	tr, err = tr.Insert([]byte("starfish"), "echinoderm")
	if err != nil {
		panic(err)
	}
	root, _ := tr.RootHash()
	fmt.Println(root)
	// Output:
	// 3755b417b0f937026ac1b867a397d6dec80dfd463c232c2daaf1de974b93da82
}

func ExampleTree_DiffIter() {
	v1, err := New()
	if err != nil {
		panic(err)
	}
	v1, err = v1.Insert([]byte("a"), "foo")
	if err != nil {
		panic(err)
	}
	v1, err = v1.Insert([]byte("b"), "asdf")
	if err != nil {
		panic(err)
	}

	v2, err := v1.Insert([]byte("a"), "bar")
	if err != nil {
		panic(err)
	}
	v2, err = v2.Delete([]byte("b"))
	if err != nil {
		panic(err)
	}
	v2, err = v2.Insert([]byte("c"), "qwerty")
	if err != nil {
		panic(err)
	}

	_ = v2.DiffIter(v1, func(added, removed bool, key []byte, newValue, oldValue interface{}) (bool, error) {
		switch {
		case added && removed:
			fmt.Printf("changed '%s' from '%v' to '%v'\n", key, oldValue, newValue)
		case removed:
			fmt.Printf("removed '%s' value '%v'\n", key, oldValue)
		case added:
			fmt.Printf("added   '%s' value '%v'\n", key, newValue)
		}
		return true, nil
	})
	// Output:
	// changed 'a' from 'foo' to 'bar'
	// removed 'b' value 'asdf'
	// added   'c' value 'qwerty'
}

func ExampleTree_Size() {
	tr, err := New()
	if err != nil {
		panic(err)
	}
	tr, err = tr.Insert([]byte("zero"), 0)
	if err != nil {
		panic(err)
	}
	tr, err = tr.Insert([]byte("one"), 1)
	if err != nil {
		panic(err)
	}
	fmt.Println(tr.Size())
	// Output:
	// 2
}

func ExampleTree_Audit() {
	tr, err := New()
	if err != nil {
		panic(err)
	}
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		tr, err = tr.Insert([]byte(k), k)
		if err != nil {
			panic(err)
		}
	}
	root, _ := tr.RootHash()

	proof, err := tr.Audit([]byte("c"))
	if err != nil {
		panic(err)
	}
	ok, err := Verify(SHA256, proof, root)
	if err != nil {
		panic(err)
	}
	fmt.Println(ok)
	// Output:
	// true
}
