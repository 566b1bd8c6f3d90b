// Package assemble renders resolved concept sets into templated narrative
// answers.
//
// Each strategic framework has a template bundle (intro, analysis,
// conclusion) whose sections may carry a placeholder that gets substituted
// with generated concept sentences. Sections are concatenated in
// caller-supplied framework order and the result is truncated to a word cap.
// The assembler never performs matching; an empty concept set renders a
// configurable "no concepts detected" message.
package assemble
