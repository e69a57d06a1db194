package render

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/sbomdiff/sbomdiff/internal/differ"
	"github.com/sbomdiff/sbomdiff/internal/policy"
)

// JUnit test-report types, consumed by CI dashboards that render test
// results rather than raw diff output.

type junitTestSuites struct {
	XMLName   xml.Name         `xml:"testsuites"`
	Name      string           `xml:"name,attr"`
	Tests     int              `xml:"tests,attr"`
	Failures  int              `xml:"failures,attr"`
	TestSuite []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	TestCases []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
}

// JUnit renders diff as a single JUnit suite with one test case per
// added/removed/changed component, each passing or carrying a <failure>.
// There is no native notion of pass/fail in a bare diff, so every case here
// passes; JUnitWithOutcome is what CI pipelines should use to get real
// failures from policy results.
func JUnit(w io.Writer, diff *differ.Diff) error {
	return JUnitWithOutcome(w, diff, nil)
}

// JUnitWithOutcome is JUnit plus, when outcome is non-nil, one failing test
// case per policy violation or fail-on trigger.
func JUnitWithOutcome(w io.Writer, diff *differ.Diff, outcome *policy.Outcome) error {
	var cases []junitTestCase
	failures := 0

	for _, c := range diff.Added {
		cases = append(cases, junitTestCase{Name: fmt.Sprintf("added: %s", c.ID), ClassName: "sbomdiff.added"})
	}
	for _, c := range diff.Removed {
		cases = append(cases, junitTestCase{Name: fmt.Sprintf("removed: %s", c.ID), ClassName: "sbomdiff.removed"})
	}
	for _, c := range diff.Changed {
		cases = append(cases, junitTestCase{Name: fmt.Sprintf("changed: %s", c.ID), ClassName: "sbomdiff.changed"})
	}

	if outcome != nil && outcome.Kind != policy.OutcomeOK {
		for _, d := range outcome.Details {
			failures++
			cases = append(cases, junitTestCase{
				Name:      fmt.Sprintf("policy: %s", d),
				ClassName: "sbomdiff.policy",
				Failure:   &junitFailure{Message: d, Type: string(outcome.Kind)},
			})
		}
	}

	suite := junitTestSuite{
		Name:      "sbom-diff",
		Tests:     len(cases),
		Failures:  failures,
		TestCases: cases,
	}
	doc := junitTestSuites{
		Name:      "sbom-diff",
		Tests:     len(cases),
		Failures:  failures,
		TestSuite: []junitTestSuite{suite},
	}

	fmt.Fprint(w, xml.Header)
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(doc)
}
