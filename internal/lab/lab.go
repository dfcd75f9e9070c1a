// Package lab walks through the hash table lab and prints what each step
// does, marking each expected result ok or FAIL.
package lab

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/lojhan/hashtable-lab/internal/store"
)

// Report counts the checks a Run performed.
type Report struct {
	Checks int
	Failed int
}

type lab struct {
	w       io.Writer
	size    int
	tracker *store.Tracker
	report  Report
}

// Run prints every section of the walkthrough to w using a table of size
// buckets. Rejection notices from the voter tracker go to logger.
func Run(w io.Writer, size int, logger *zap.Logger) (Report, error) {
	l := &lab{
		w:       w,
		size:    size,
		tracker: store.NewTracker(logger),
	}

	l.printf("\n%s\n   HASH TABLES LAB\n%s\n", strings.Repeat("#", 40), strings.Repeat("#", 40))

	l.mapIntro()
	l.checkVoterDemo()
	if err := l.hashTableDemo(); err != nil {
		return l.report, err
	}
	if err := l.hashFunctionDemo(); err != nil {
		return l.report, err
	}
	l.loadFactorNotes()

	l.header("SUMMARY")
	l.printf("  %d checks, %d failed\n", l.report.Checks, l.report.Failed)

	if l.report.Failed > 0 {
		return l.report, fmt.Errorf("%d of %d checks failed", l.report.Failed, l.report.Checks)
	}
	return l.report, nil
}

func (l *lab) printf(format string, args ...any) {
	fmt.Fprintf(l.w, format, args...)
}

func (l *lab) header(title string) {
	bar := strings.Repeat("=", 60)
	l.printf("\n%s\n  %s\n%s\n", bar, title, bar)
}

func (l *lab) check(ok bool) string {
	l.report.Checks++
	if ok {
		return "ok"
	}
	l.report.Failed++
	return "FAIL"
}

func (l *lab) mapIntro() {
	l.header("GO MAPS (BUILT-IN HASH TABLES)")

	phoneBook := map[string]string{"jenny": "867-5309", "emergency": "911"}
	_, hasEmergency := phoneBook["emergency"]
	number, ok := phoneBook["unknown"]
	if !ok {
		number = "N/A"
	}

	l.printf("  phoneBook[\"jenny\"] = %q\n", phoneBook["jenny"])
	l.printf("  _, ok := phoneBook[\"emergency\"] -> ok = %v\n", hasEmergency)
	l.printf("  phoneBook[\"unknown\"] with default = %q\n", number)
}

func (l *lab) checkVoterDemo() {
	l.header("PART 1: CheckVoter - preventing duplicates")

	voted := make(store.Registry)
	steps := []struct {
		name        string
		expected    bool
		description string
	}{
		{"tom", true, "first vote, allowed"},
		{"mike", true, "first vote, allowed"},
		{"tom", false, "second vote, rejected"},
		{"alice", true, "first vote, allowed"},
	}

	for _, step := range steps {
		got := l.tracker.CheckVoter(voted, step.name)
		l.printf("  CheckVoter(voted, %q): %v %s\n", step.name, got, l.check(got == step.expected))
		l.printf("    %s\n", step.description)
	}

	l.printf("\n  voted: %v\n", voted.Names())
}

func (l *lab) hashTableDemo() error {
	l.header("PART 2: HashTable")

	ht, err := store.NewHashTable[int](l.size)
	if err != nil {
		return err
	}

	l.printf("\n  1. Put and Get:\n")
	for _, item := range []struct {
		key   string
		value int
	}{{"apple", 5}, {"banana", 3}, {"cherry", 7}} {
		ht.Put(item.key, item.value)
		got, _ := ht.Get(item.key)
		l.printf("     Put(%q, %d), Get(%q) = %d %s\n", item.key, item.value, item.key, got, l.check(got == item.value))
	}

	l.printf("\n  2. Update an existing key:\n")
	ht.Put("apple", 10)
	got, _ := ht.Get("apple")
	l.printf("     Put(\"apple\", 10), Get(\"apple\") = %d %s\n", got, l.check(got == 10))

	l.printf("\n  3. Get a missing key:\n")
	_, found := ht.Get("dragonfruit")
	l.printf("     Get(\"dragonfruit\") found = %v %s\n", found, l.check(!found))

	l.printf("\n  4. Delete:\n")
	deleted := ht.Delete("banana")
	_, found = ht.Get("banana")
	l.printf("     Delete(\"banana\") = %v, Get(\"banana\") found = %v %s\n", deleted, found, l.check(deleted && !found))

	l.printf("\n  %d entries in %d buckets, load factor %.2f\n", ht.Len(), ht.Size(), ht.LoadFactor())
	return nil
}

func (l *lab) hashFunctionDemo() error {
	l.header("UNDERSTANDING HASH FUNCTIONS")

	ht, err := store.NewHashTable[struct{}](l.size)
	if err != nil {
		return err
	}

	l.printf("  index = xxhash64(key) %% %d\n\n", ht.Size())
	for _, word := range []string{"apple", "banana", "cherry", "date", "elderberry"} {
		ht.Put(word, struct{}{})
		l.printf("    %-12q -> bucket %d\n", word, ht.IndexFor(word))
	}

	l.printf("\n  chain lengths: %v\n", ht.BucketLens())
	return nil
}

func (l *lab) loadFactorNotes() {
	l.header("LOAD FACTOR")

	l.printf("  load factor = entries / buckets\n")
	l.printf("  7 entries in 10 buckets -> 0.7\n")
	l.printf("  above 1 every extra entry is a guaranteed collision\n")
	l.printf("  this table never resizes, so the load factor only reports\n")
}
