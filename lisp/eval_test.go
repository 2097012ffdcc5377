package lisp_test

import (
	"testing"

	"github.com/luthersystems/beatlisp/lisptest"
)

func TestEval(t *testing.T) {
	tests := lisptest.TestSuite{
		{"quotes", lisptest.TestSequence{
			{"3", "3", ""},
			{"'3", "3", ""},
			{"''3", "'3", ""},
			{"'(+ 1 2)", "(+ 1 2)", ""},
			{"(quote (a b))", "(a b)", ""},
			{"()", "()", ""},
			{`"str"`, `"str"`, ""},
		}},
		{"arithmetic", lisptest.TestSequence{
			{"(+)", "0", ""},
			{"(*)", "1", ""},
			{"(+ 1 2 3)", "6", ""},
			{"(- 5)", "-5", ""},
			{"(- 10 3 2)", "5", ""},
			{"(/ 2)", "0.5", ""},
			{"(/ 12 3 2)", "2", ""},
			{"(* 1.5 2)", "3", ""},
			{"(mod 7 3)", "1", ""},
			{"(pow 2 3 2)", "64", ""},
			{"(min 3 1 2)", "1", ""},
			{"(max 3 1 2)", "3", ""},
			{"(/ 1 0)", "test:1:1: divide-by-zero: /: division by zero", ""},
			{"(-)", "test:1:1: arity-mismatch: -: at least one argument expected", ""},
			{`(+ 1 "2")`, `test:1:1: argument-error: +: argument 2 is not a number: "2"`, ""},
		}},
		{"comparison", lisptest.TestSequence{
			{"(= 1 1 1)", "true", ""},
			{"(= 1 2)", "false", ""},
			{"(= '(1 2) (list 1 2))", "true", ""},
			{"(!= 1 2)", "true", ""},
			{"(< 1 2 3)", "true", ""},
			{"(< 1 3 2)", "false", ""},
			{"(>= 3 3 1)", "true", ""},
			{"(not 0)", "true", ""},
			{"(not true)", "false", ""},
		}},
		{"lists", lisptest.TestSequence{
			{"(list 1 (+ 1 1) 'x)", "(1 2 x)", ""},
			{"(first '(1 2 3))", "1", ""},
			{"(first ())", "()", ""},
			{"(rest '(1 2 3))", "(2 3)", ""},
			{"(length '(1 2 3))", "3", ""},
			{`(length "abc")`, "3", ""},
			{"(concat '(1) '() '(2 3))", "(1 2 3)", ""},
			{"(repeat 3 'a)", "(a a a)", ""},
			{"(map (lambda (x) (* x 2)) '(1 2 3))", "(2 4 6)", ""},
		}},
		{"let", lisptest.TestSequence{
			{"(let () 1)", "1", ""},
			{"(let ((x 1)) x)", "1", ""},
			{"(let ([x 1] [y 2]) (+ x y))", "3", ""},
			{"(let ((x 1) (y (+ x 1))) y)", "2", ""},
			{"(let '((x 4)) x)", "4", ""},
			{"(let (list (list 'x 5)) x)", "5", ""},
			{"(let ((x 1)) (let ((x 2)) x))", "2", ""},
			{"(let ((x 1)))", "()", ""},
			{"x", "test:1:1: undefined-variable: undefined variable: x", ""},
		}},
		{"lambda", lisptest.TestSequence{
			{"((lambda (x y) (+ x y)) 1 2)", "3", ""},
			{"((lambda '(x) x) 7)", "7", ""},
			{"(lambda (x) x)", "(lambda (x) x)", ""},
			{"((lambda (x y) x) 1)", "1", ""},
			{"((lambda (x y) y) 1)", "test:1:16: missing-argument: no argument was given for parameter y", ""},
			{"((lambda (x) x) 1 2)", "test:1:1: arity-mismatch: function expects at most 1 arguments (got 2)", ""},
			{"((lambda (x) x) :a 1)", "test:1:1: unsupported-named-arguments: lambda does not accept named arguments: a", ""},
			{"(lambda (x x) x)", "test:1:1: argument-error: lambda: duplicate parameter: x", ""},
		}},
		{"closures", lisptest.TestSequence{
			{"(let ((x 10)) (let ((f (lambda () x))) (let ((x 20)) (f))))", "10", ""},
			{"(let ((add (lambda (n) (lambda (x) (+ x n))))) ((add 3) 4))", "7", ""},
		}},
		{"if", lisptest.TestSequence{
			{"(if true 1 2)", "1", ""},
			{"(if false 1 2)", "2", ""},
			{"(if 0 1 2)", "2", ""},
			{`(if "" 1 2)`, "2", ""},
			{"(if () 1 2)", "2", ""},
			{"(if '() 1 2)", "2", ""},
			{`(if "a" 1 2)`, "1", ""},
			{"(if '(()) 1 2)", "1", ""},
			{"(if false 1)", "()", ""},
			{"(if true 1 (/ 1 0))", "1", ""},
			{"(if)", "test:1:1: argument-error: if: two or three arguments expected (got 0)", ""},
		}},
		{"shadowing", lisptest.TestSequence{
			{"(let ((note (lambda (x) x))) (note 5))", "5", ""},
			{"(let ((if 1)) (if if 2 3))", "2", ""},
			{"(let ((+ -)) (+ 5 3))", "2", ""},
		}},
		{"calls", lisptest.TestSequence{
			{"(1 2)", "test:1:1: not-a-function: first element of expression is not a function: 1", ""},
			{"(undefined-thing)", "test:1:2: undefined-variable: undefined variable: undefined-thing", ""},
			{"(+ 1 :foo 2)", "test:1:1: unsupported-named-arguments: + does not accept named arguments: foo", ""},
			{"(note 60 :foo 1 :bar 2)", "test:1:1: unsupported-named-arguments: unsupported named arguments for note: bar, foo", ""},
			{`(note "C4" :velocity)`, "test:1:12: missing-named-argument-value: named argument :velocity has no value", ""},
			{"(note 60 :velocity 1 :velocity 2)", "test:1:22: argument-error: named argument :velocity given more than once", ""},
		}},
		{"debug", lisptest.TestSequence{
			{`(debug-print "a" 1 '(b))`, "()", "a 1 (b)\n"},
			{"(let ((f (lambda () (debug-stack)))) (f))", "()",
				"Stack Trace [2 frames -- entrypoint last]:\n" +
					"  height 1: debug-stack (test:1:21)\n" +
					"  height 0: f (test:1:38)\n"},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestEvalMusic(t *testing.T) {
	tests := lisptest.TestSuite{
		{"note", lisptest.TestSequence{
			{`(note "C4")`, `(note "C4" 1 :velocity 0.7 :instrument "default")`, ""},
			{`(note 'F#3 0.5)`, `(note "F#3" 0.5 :velocity 0.7 :instrument "default")`, ""},
			{`(note 60 0.5 :velocity 0.9 :instrument "piano")`, `(note 60 0.5 :velocity 0.9 :instrument "piano")`, ""},
			{`(note "H2")`, `test:1:1: argument-error: note: invalid note name: "H2"`, ""},
			{`(note)`, `test:1:1: arity-mismatch: note: 1 to 2 arguments expected (got 0)`, ""},
		}},
		{"chord", lisptest.TestSequence{
			{`(chord '("C4" "E4" 67) 2)`, `(chord '("C4" "E4" 67) 2 :velocity 0.7 :instrument "default")`, ""},
			{`(chord 60)`, `(chord '(60) 1 :velocity 0.7 :instrument "default")`, ""},
		}},
		{"sequence", lisptest.TestSequence{
			{`(sequence (note 60) (note 62 0.5))`,
				`(sequence (note 60 1 :velocity 0.7 :instrument "default") (note 62 0.5 :velocity 0.7 :instrument "default"))`, ""},
			{`(parallel)`, `(parallel)`, ""},
			{`(sequence 1)`, `test:1:1: argument-error: sequence: argument 1 is not an event: 1`, ""},
		}},
		{"beat-machine", lisptest.TestSequence{
			{`(beat-machine "x.X-" '("kick" "hat") :swing 0.5)`,
				`(beat-machine "x.X-" '("kick" "hat") :tempo 120 :swing 0.5)`, ""},
			{`(beat-machine "x" "kick" :tempo 90)`, `(beat-machine "x" '("kick") :tempo 90 :swing 0)`, ""},
			{`(beat-machine "xo" "kick")`, `test:1:1: argument-error: beat-machine: invalid pattern character 'o' in "xo"`, ""},
		}},
		{"step", lisptest.TestSequence{
			{`(step 1)`, `(step 1 :pitch 0 :volume 0 :duration 0.25)`, ""},
			{`(step 0 :pitch 7 :volume -3 :duration 0.5)`, `(step 0 :pitch 7 :volume -3 :duration 0.5)`, ""},
			{`(step true)`, `(step 1 :pitch 0 :volume 0 :duration 0.25)`, ""},
		}},
		{"track", lisptest.TestSequence{
			{`(track "kick" '(1 0))`,
				`(track "kick" '((step 1 :pitch 0 :volume 0 :duration 0.25) (step 0 :pitch 0 :volume 0 :duration 0.25)) :time 16 :volume 0)`, ""},
			{`(track "kick" '((step 1 :volume -2)) :bars 2 :time 4 :active 0)`,
				`(track "kick" '((step 1 :pitch 0 :volume -2 :duration 0.25)) :active 0 :bars 2 :time 4 :volume 0)`, ""},
			{`(track "kick" (list (effect "reverb" 0.5 (step 1))))`,
				`(track "kick" '((effect "reverb" 0.5 (step 1 :pitch 0 :volume 0 :duration 0.25))) :time 16 :volume 0)`, ""},
			{`(track "kick" 1)`, `test:1:1: invalid-track-steps: track "kick": steps must be a list (got number)`, ""},
			{`(track "kick" '("x"))`, `test:1:1: invalid-track-steps: track "kick": element is not a step: "x"`, ""},
			{`(track "kick" (list (note 60)))`,
				`test:1:1: invalid-track-steps: track "kick": element is not a step: (note 60 1 :velocity 0.7 :instrument "default")`, ""},
		}},
		{"arrangement", lisptest.TestSequence{
			{`(arrangement (track "kick" '(1)) (track "hat" '(1) :bars 1) :bars 3 :volume -1)`,
				`(arrangement :active 1 :bars 3 :volume -1 ` +
					`(track "kick" '((step 1 :pitch 0 :volume 0 :duration 0.25)) :bars 3 :time 16 :volume 0) ` +
					`(track "hat" '((step 1 :pitch 0 :volume 0 :duration 0.25)) :bars 1 :time 16 :volume 0))`, ""},
			{`(arrangement (note 60))`, `test:1:1: argument-error: arrangement: argument 1 is not a track: (note 60 1 :velocity 0.7 :instrument "default")`, ""},
		}},
		{"drum-machine", lisptest.TestSequence{
			{`(drum-machine (arrangement :active 0) :tempo 90 :signature 3)`,
				`(drum-machine :tempo 90 :signature 3 (arrangement :active 0 :bars 1 :volume 0))`, ""},
			{`(drum-machine (track "kick" '(1)))`,
				`test:1:1: argument-error: drum-machine: argument 1 is not an arrangement: (track "kick" '((step 1 :pitch 0 :volume 0 :duration 0.25)) :time 16 :volume 0)`, ""},
		}},
		{"effect", lisptest.TestSequence{
			{`(effect "delay" 0.25 "dotted" (effect "reverb" (step 1)))`,
				`(effect "delay" 0.25 "dotted" (effect "reverb" (step 1 :pitch 0 :volume 0 :duration 0.25)))`, ""},
			{`(effect "reverb" (note 60))`, `test:1:1: argument-error: effect: target is not a step: (note 60 1 :velocity 0.7 :instrument "default")`, ""},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}
