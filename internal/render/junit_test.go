package render

import (
	"bytes"
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbomdiff/sbomdiff/internal/policy"
)

func decodeJUnit(t *testing.T, buf *bytes.Buffer) junitTestSuites {
	t.Helper()
	var doc junitTestSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	return doc
}

func TestJUnitAllCasesPassWithoutOutcome(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JUnit(&buf, sampleDiff()))

	doc := decodeJUnit(t, &buf)
	require.Len(t, doc.TestSuite, 1)
	suite := doc.TestSuite[0]

	assert.Equal(t, 2, suite.Tests) // 1 added + 1 changed
	assert.Equal(t, 0, suite.Failures)
	for _, tc := range suite.TestCases {
		assert.Nil(t, tc.Failure)
	}
}

func TestJUnitWithOutcomeAddsFailingCase(t *testing.T) {
	var buf bytes.Buffer
	outcome := &policy.Outcome{Kind: policy.OutcomeFailOn, Condition: policy.ConditionMissingHashes, Details: []string{"pkg:npm/left-pad@1.3.0"}}
	require.NoError(t, JUnitWithOutcome(&buf, sampleDiff(), outcome))

	doc := decodeJUnit(t, &buf)
	suite := doc.TestSuite[0]

	assert.Equal(t, 3, suite.Tests)
	assert.Equal(t, 1, suite.Failures)

	var found bool
	for _, tc := range suite.TestCases {
		if tc.Failure != nil {
			found = true
			assert.Equal(t, string(policy.OutcomeFailOn), tc.Failure.Type)
		}
	}
	assert.True(t, found)
}

func TestJUnitWithOKOutcomeAddsNoFailures(t *testing.T) {
	var buf bytes.Buffer
	outcome := &policy.Outcome{Kind: policy.OutcomeOK}
	require.NoError(t, JUnitWithOutcome(&buf, sampleDiff(), outcome))

	doc := decodeJUnit(t, &buf)
	assert.Equal(t, 0, doc.TestSuite[0].Failures)
}
