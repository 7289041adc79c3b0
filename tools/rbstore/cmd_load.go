package main

import "flag"
import "fmt"
import "math/rand"
import "time"

import "github.com/bnclabs/rbindex/lib"
import "github.com/bnclabs/rbindex/rbtree"
import humanize "github.com/dustin/go-humanize"

var loadopts struct {
	n        int
	indexes  int
	dups     bool
	seed     int64
	check    int
	settings string
	tracking bool
}

func parseLoadopts(args []string) {
	f := flag.NewFlagSet("load", flag.ExitOnError)

	f.IntVar(&loadopts.n, "n", 100000,
		"number of records to insert and remove")
	f.IntVar(&loadopts.indexes, "indexes", 2,
		"number of indexes, including primary")
	f.BoolVar(&loadopts.dups, "dups", false,
		"allow duplicate keys")
	f.Int64Var(&loadopts.seed, "seed", time.Now().UnixNano(),
		"seed for generating random keys")
	f.IntVar(&loadopts.check, "check", 0,
		"validate the store after every `check` operations, 0 to disable")
	f.StringVar(&loadopts.settings, "settings", "",
		"yaml file with store settings")
	f.BoolVar(&loadopts.tracking, "tracking", false,
		"track node allocations")
	f.Parse(args)
}

type loadrec struct {
	key  int64
	fold int64
}

func doLoad() int {
	setts, err := loadsettings(loadopts.settings)
	if err != nil {
		fmt.Printf("%v\n", err)
		return 1
	}
	setts = setts.Mixin(lib.Settings{
		"allowdups":          loadopts.dups,
		"maxindexes":         int64(loadopts.indexes),
		"nodearena.tracking": loadopts.tracking,
	})
	rbtree.LogComponents("rbtree")

	byKey := rbtree.IntKey(func(r *loadrec) int64 { return r.key })
	store := rbtree.NewStore[*loadrec]("load", byKey, setts)
	for i := 1; i < loadopts.indexes; i++ {
		fold := rbtree.IntKey(func(r *loadrec) int64 { return r.fold })
		if _, err := store.AddIndex(fmt.Sprintf("fold%v", i), fold); err != nil {
			fmt.Printf("%v\n", err)
			return 1
		}
	}

	fmt.Printf("seed: %v\n", loadopts.seed)
	rnd := rand.New(rand.NewSource(loadopts.seed))
	recs := make([]*loadrec, 0, loadopts.n)

	now, rejects, replaced := time.Now(), 0, 0
	for i := 0; i < loadopts.n; i++ {
		key := rnd.Int63n(int64(loadopts.n) * 10)
		rec := &loadrec{key: key, fold: key % 1000003}
		_, ok, err := store.Insert(rec, int64(16+rnd.Intn(240)))
		if err != nil {
			rejects++
			continue
		} else if ok {
			replaced++
		}
		recs = append(recs, rec)
		if loadopts.check > 0 && i%loadopts.check == 0 {
			store.Validate()
		}
	}
	took := time.Since(now)
	fmsg := "inserted %v records in %v, %v replaced, %v rejected\n"
	fmt.Printf(fmsg, humanize.Comma(int64(len(recs))), took, replaced, rejects)
	fmt.Printf("%v\n", store.Logstring(true))
	store.Validate()
	store.Log(true)

	now, missing := time.Now(), 0
	for i := len(recs) - 1; i >= 0; i-- {
		if _, ok := store.RemoveRecord(recs[i]); !ok {
			missing++ // replaced by a later insert
		}
		if loadopts.check > 0 && i%loadopts.check == 0 {
			store.Validate()
		}
	}
	fmsg = "removed %v records in %v, %v were replaced\n"
	fmt.Printf(fmsg, humanize.Comma(int64(len(recs)-missing)), time.Since(now), missing)
	store.Validate()
	if store.Count() != 0 {
		fmt.Printf("expected empty store, got %v records\n", store.Count())
		return 1
	}
	fmt.Printf("%v\n", store.Logstring(true))
	store.Release()
	return 0
}
