package malloc

import "fmt"
import "sort"
import "strings"

import "github.com/bnclabs/rbindex/api"
import "github.com/bnclabs/rbindex/lib"
import "github.com/bnclabs/rbindex/log"
import humanize "github.com/dustin/go-humanize"

// siteinfo accounts allocations made from a single call site.
type siteinfo struct {
	allocs int64
	frees  int64
	live   int64 // live bytes
}

type allocation struct {
	site string
	size int64
}

// Tracker wraps an api.Allocator and accounts every allocation by its
// call site. Freeing a handle that was never allocated through the
// tracker is logged as error and ignored.
type Tracker struct {
	name     string
	mallocer api.Allocator
	sites    map[string]*siteinfo
	live     map[api.Handle]allocation
	heapsize int64
	peaksize int64
	h_sizes  *lib.HistogramInt64
}

// NewTracker create a new tracker over mallocer.
func NewTracker(name string, mallocer api.Allocator) *Tracker {
	return &Tracker{
		name:     name,
		mallocer: mallocer,
		sites:    make(map[string]*siteinfo),
		live:     make(map[api.Handle]allocation),
		h_sizes:  lib.NewhistorgramInt64(0, 1024, 32),
	}
}

// Alloc implement api.Allocator interface.
func (tr *Tracker) Alloc(site string, size int64) api.Handle {
	h := tr.mallocer.Alloc(site, size)
	info := tr.siteinfo(site)
	info.allocs++
	info.live += size
	tr.live[h] = allocation{site: site, size: size}
	tr.heapsize += size
	if tr.heapsize > tr.peaksize {
		tr.peaksize = tr.heapsize
	}
	tr.h_sizes.Add(size)
	return h
}

// Free implement api.Allocator interface.
func (tr *Tracker) Free(site string, h api.Handle) {
	a, ok := tr.live[h]
	if !ok {
		log.Errorf("%v free of untracked slot %v at %v\n", tr.logprefix(), h, site)
		return
	}
	delete(tr.live, h)
	info := tr.siteinfo(a.site)
	info.frees++
	info.live -= a.size
	tr.heapsize -= a.size
	tr.mallocer.Free(site, h)
}

// Info implement api.Allocator interface.
func (tr *Tracker) Info() (capacity, allocated int64) {
	return tr.mallocer.Info()
}

// Release implement api.Allocator interface. Live allocations are
// logged as leaks before releasing the underlying allocator.
func (tr *Tracker) Release() {
	if len(tr.live) > 0 {
		fmsg := "%v releasing with %v live slots, %v\n"
		heap := humanize.Bytes(uint64(tr.heapsize))
		log.Warnf(fmsg, tr.logprefix(), len(tr.live), heap)
	}
	tr.live = make(map[api.Handle]allocation)
	tr.heapsize = 0
	tr.mallocer.Release()
}

// Heapsize return live bytes and the peak live bytes seen so far.
func (tr *Tracker) Heapsize() (heap, peak int64) {
	return tr.heapsize, tr.peaksize
}

// Stats return accounting figures, per site figures are keyed by
// "site.<site>.*".
func (tr *Tracker) Stats() map[string]interface{} {
	capacity, allocated := tr.mallocer.Info()
	stats := map[string]interface{}{
		"capacity":  capacity,
		"allocated": allocated,
		"heapsize":  tr.heapsize,
		"peaksize":  tr.peaksize,
		"h_sizes":   tr.h_sizes.Fullstats(),
	}
	for site, info := range tr.sites {
		stats["site."+site+".allocs"] = info.allocs
		stats["site."+site+".frees"] = info.frees
		stats["site."+site+".live"] = info.live
	}
	return stats
}

// Log accounting figures, one line per call site.
func (tr *Tracker) Log() {
	heap := humanize.Bytes(uint64(tr.heapsize))
	peak := humanize.Bytes(uint64(tr.peaksize))
	log.Infof("%v heap %v peak %v\n", tr.logprefix(), heap, peak)

	sites := make([]string, 0, len(tr.sites))
	for site := range tr.sites {
		sites = append(sites, site)
	}
	sort.Strings(sites)
	lines := make([]string, 0, len(sites))
	for _, site := range sites {
		info := tr.sites[site]
		fmsg := "  %v allocs:%v frees:%v live:%v"
		live := humanize.Bytes(uint64(info.live))
		lines = append(lines, fmt.Sprintf(fmsg, site, info.allocs, info.frees, live))
	}
	if len(lines) > 0 {
		log.Infof("%v sites:\n%v\n", tr.logprefix(), strings.Join(lines, "\n"))
	}
}

func (tr *Tracker) siteinfo(site string) *siteinfo {
	info, ok := tr.sites[site]
	if !ok {
		info = &siteinfo{}
		tr.sites[site] = info
	}
	return info
}

func (tr *Tracker) logprefix() string {
	return fmt.Sprintf("TRACKER [%s]", tr.name)
}
