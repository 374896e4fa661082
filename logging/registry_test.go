package logging

import (
	"bytes"
	"testing"

	"go.viam.com/test"
)

func TestValidatePattern(t *testing.T) {
	for _, pattern := range []string{"planarkin", "planarkin.ccd", "planarkin.*", "*", "*.planner", "arm_1.ccd"} {
		test.That(t, validatePattern(pattern), test.ShouldBeTrue)
	}
	for _, pattern := range []string{"", ".", "planarkin.", "planarkin..ccd", "planarkin ccd", "plan?"} {
		test.That(t, validatePattern(pattern), test.ShouldBeFalse)
	}
}

func TestBuildRegexFromPattern(t *testing.T) {
	test.That(t, buildRegexFromPattern("planarkin.*"), test.ShouldEqual, `^planarkin\..*$`)
	test.That(t, buildRegexFromPattern("a.b"), test.ShouldEqual, `^a\.b$`)
}

func TestParsePatternConfig(t *testing.T) {
	lpc, err := ParsePatternConfig("planarkin.ccd=debug")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, lpc, test.ShouldResemble, LoggerPatternConfig{Pattern: "planarkin.ccd", Level: "debug"})

	_, err = ParsePatternConfig("planarkin.ccd")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = ParsePatternConfig("planarkin..ccd=debug")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = ParsePatternConfig("planarkin=loud")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRegistry(t *testing.T) {
	var buf bytes.Buffer
	reg := NewRegistry()
	root := reg.Track(NewWriterLogger("planarkin", INFO, &buf))
	ccd := root.Sublogger("ccd")
	planner := root.Sublogger("planner")

	test.That(t, len(reg.Names()), test.ShouldEqual, 3)
	got, ok := reg.LoggerNamed("planarkin.ccd")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, got, test.ShouldEqual, ccd)
	_, ok = reg.LoggerNamed("planarkin.other")
	test.That(t, ok, test.ShouldBeFalse)

	err := reg.UpdateConfig([]LoggerPatternConfig{{Pattern: "planarkin.ccd", Level: "debug"}}, root)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ccd.GetLevel(), test.ShouldEqual, DEBUG)
	test.That(t, planner.GetLevel(), test.ShouldEqual, INFO)
	test.That(t, root.GetLevel(), test.ShouldEqual, INFO)

	// a debug sublogger writes through a core shared with an info parent
	ccd.Debug("sweeping")
	planner.Debug("dropped")
	test.That(t, buf.String(), test.ShouldContainSubstring, "sweeping")
	test.That(t, buf.String(), test.ShouldNotContainSubstring, "dropped")

	// loggers created later pick up the patterns
	err = reg.UpdateConfig([]LoggerPatternConfig{{Pattern: "planarkin.*", Level: "warn"}}, root)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ccd.GetLevel(), test.ShouldEqual, WARN)
	render := root.Sublogger("render")
	test.That(t, render.GetLevel(), test.ShouldEqual, WARN)

	// asking for the same sublogger twice returns the registered one
	test.That(t, root.Sublogger("ccd"), test.ShouldEqual, ccd)

	// later patterns win
	err = reg.UpdateConfig([]LoggerPatternConfig{
		{Pattern: "*", Level: "error"},
		{Pattern: "planarkin.planner", Level: "debug"},
	}, root)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, planner.GetLevel(), test.ShouldEqual, DEBUG)
	test.That(t, root.GetLevel(), test.ShouldEqual, ERROR)

	err = reg.UpdateConfig([]LoggerPatternConfig{{Pattern: "planarkin", Level: "loud"}}, root)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRegistryInvalidPattern(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	reg := NewRegistry()
	reg.Track(logger)
	err := reg.UpdateConfig([]LoggerPatternConfig{{Pattern: "bad..pattern", Level: "debug"}}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logs.FilterMessage("failed to validate a pattern").Len(), test.ShouldEqual, 1)
}
