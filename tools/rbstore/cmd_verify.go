package main

import "flag"
import "fmt"
import "math/rand"

import "github.com/bnclabs/rbindex/api"
import "github.com/bnclabs/rbindex/lib"
import "github.com/bnclabs/rbindex/rbtree"

var verifyopts struct {
	seed     int64
	n        int
	settings string
	run      []string
}

func parseVerifyopts(args []string) {
	f := flag.NewFlagSet("verify", flag.ExitOnError)

	var run string

	f.Int64Var(&verifyopts.seed, "seed", 1, "seed for random keys")
	f.IntVar(&verifyopts.n, "n", 1000, "number of records for the balance check")
	f.StringVar(&verifyopts.settings, "settings", "", "yaml file with store settings")
	f.StringVar(&run, "run", "", "comma separated checks to run, default all")
	f.Parse(args)
	verifyopts.run = lib.Parsecsv(run)
}

type verifyrec struct {
	id   int64
	name string
}

func doVerify() int {
	setts, err := loadsettings(verifyopts.settings)
	if err != nil {
		fmt.Printf("%v\n", err)
		return 1
	}
	checks := []struct {
		name string
		fn   func(lib.Settings) error
	}{
		{"ascending", verifyAscending},
		{"insertremove", verifyInsertRemove},
		{"cascade", verifyCascade},
		{"reverse", verifyReverse},
	}
	failed := 0
	for _, check := range checks {
		if !selected(check.name) {
			continue
		}
		err := catchinvariant(func() error { return check.fn(setts) })
		if err != nil {
			failed++
			fmt.Printf("%-20s FAIL %v\n", check.name, err)
			continue
		}
		fmt.Printf("%-20s ok\n", check.name)
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func selected(name string) bool {
	if len(verifyopts.run) == 0 {
		return true
	}
	for _, s := range verifyopts.run {
		if s == name {
			return true
		}
	}
	return false
}

func intstore(setts lib.Settings) *rbtree.Store[int64] {
	return rbtree.NewStore[int64]("verify", rbtree.IntKey(func(x int64) int64 { return x }), setts)
}

func verifyAscending(setts lib.Settings) error {
	store := intstore(setts)
	defer store.Release()
	for _, x := range []int64{2, 1, 3} {
		store.Insert(x, 8)
	}
	var cur rbtree.Cursor[int64]
	for _, ref := range []int64{1, 2, 3} {
		x, ok := store.Next(0, &cur)
		if !ok || x != ref {
			return fmt.Errorf("expected %v, got %v,%v", ref, x, ok)
		}
	}
	if x, ok := store.Next(0, &cur); ok {
		return fmt.Errorf("unexpected %v", x)
	}
	return nil
}

func verifyInsertRemove(setts lib.Settings) error {
	store := intstore(setts)
	defer store.Release()
	store.Insert(7, 8)
	store.RemoveRecord(7)
	if _, ok := store.Find(7, 0); ok {
		return fmt.Errorf("7 found after removal")
	} else if store.Count() != 0 {
		return fmt.Errorf("expected count 0, got %v", store.Count())
	}
	return nil
}

func verifyCascade(setts lib.Settings) error {
	byid := rbtree.IntKey(func(r *verifyrec) int64 { return r.id })
	byname := rbtree.StringKey(func(r *verifyrec) string { return r.name })
	store := rbtree.NewStore[*verifyrec]("verify", byid, setts)
	defer store.Release()
	if _, err := store.AddIndex("name", byname); err != nil {
		return err
	}
	store.Insert(&verifyrec{id: 1, name: "a"}, 8)
	if _, ok := store.RemoveKey(&verifyrec{id: 1}, 0); !ok {
		return fmt.Errorf("%w: id 1", api.ErrorKeyMissing)
	}
	if _, ok := store.Find(&verifyrec{name: "a"}, 1); ok {
		return fmt.Errorf("name a found after removal")
	}
	return nil
}

func verifyReverse(setts lib.Settings) error {
	store := intstore(setts)
	defer store.Release()
	rnd := rand.New(rand.NewSource(verifyopts.seed))
	keys, seen := []int64{}, map[int64]bool{}
	for len(keys) < verifyopts.n {
		if x := rnd.Int63(); !seen[x] {
			seen[x] = true
			keys = append(keys, x)
			store.Insert(x, 8)
			store.Validate()
		}
	}
	for i := len(keys) - 1; i >= 0; i-- {
		if _, ok := store.RemoveRecord(keys[i]); !ok {
			return fmt.Errorf("%w: %v", api.ErrorKeyMissing, keys[i])
		}
		store.Validate()
	}
	if store.Count() != 0 {
		return fmt.Errorf("expected count 0, got %v", store.Count())
	}
	return nil
}

// catchinvariant convert a Validate() panic into error.
func catchinvariant(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn()
}
