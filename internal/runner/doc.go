// Package runner describes external tool calls as Invocation values and runs
// them through an Executor. ProcessExecutor blocks on the child process with
// inherited standard streams; Recorder captures invocations for dry runs.
package runner
