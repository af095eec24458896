package shell

// BashPlugin is the bash hook. A DEBUG trap logs commands and PROMPT_COMMAND
// notices directory changes, since bash has no chpwd hook.
const BashPlugin = `# trail shell hook, generated by 'trail hook bash'
# Source this file from your ~/.bashrc:
#   source ~/.config/trail/trail.plugin.bash
#   or: eval "$(trail hook bash)"

_trail_prev_dir="$PWD"

_trail_preexec() {
  local cmd="$BASH_COMMAND"
  # Skip prompt plumbing and trail's own invocations.
  [[ "$cmd" == _trail_* ]] && return
  [[ "$cmd" =~ ^[[:space:]]*([^[:space:]]*/)?trail([[:space:]]|$) ]] && return
  (
    if [[ "$(command trail idle 2>/dev/null)" == "idle" ]]; then
      command trail log --idle-end --cwd "$PWD"
    fi
    command trail log --cmd "$cmd" --cwd "$PWD"
  ) >/dev/null 2>&1 &
  disown $! 2>/dev/null
}

_trail_prompt() {
  if [[ "$PWD" != "$_trail_prev_dir" ]]; then
    (command trail log --event cd --prev-dir "$_trail_prev_dir" --cwd "$PWD" >/dev/null 2>&1 &)
    _trail_prev_dir="$PWD"
  fi
}

_trail_exit() {
  command trail log --session-end --cwd "$PWD" >/dev/null 2>&1
}

trap '_trail_preexec' DEBUG
trap '_trail_exit' EXIT
PROMPT_COMMAND="_trail_prompt${PROMPT_COMMAND:+;$PROMPT_COMMAND}"

(command trail log --session-start --cwd "$PWD" >/dev/null 2>&1 &)
`
