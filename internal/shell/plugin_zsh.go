package shell

// ZshPlugin is the zsh hook. It logs a session start when sourced, every
// command from preexec, directory changes from chpwd and a session end on
// exit. Before each command it asks trail whether the shell was idle and
// records the return from idle. Every call runs in the background so the
// prompt never waits on trail.
const ZshPlugin = `# trail shell hook, generated by 'trail hook zsh'
# Source this file from your ~/.zshrc:
#   source ~/.config/trail/trail.plugin.zsh
#   or: eval "$(trail hook zsh)"

_trail_prev_dir="$PWD"

_trail_preexec() {
  local cmd="$1"
  # Skip trail's own invocations.
  [[ "$cmd" =~ '^[[:space:]]*([^[:space:]]*/)?trail([[:space:]]|$)' ]] && return
  {
    if [[ "$(command trail idle 2>/dev/null)" == "idle" ]]; then
      command trail log --idle-end --cwd "$PWD"
    fi
    command trail log --cmd "$cmd" --cwd "$PWD"
  } >/dev/null 2>&1 &!
}

_trail_chpwd() {
  command trail log --event cd --prev-dir "$_trail_prev_dir" --cwd "$PWD" >/dev/null 2>&1 &!
  _trail_prev_dir="$PWD"
}

_trail_zshexit() {
  command trail log --session-end --cwd "$PWD" >/dev/null 2>&1
}

autoload -Uz add-zsh-hook
add-zsh-hook preexec _trail_preexec
add-zsh-hook chpwd _trail_chpwd
add-zsh-hook zshexit _trail_zshexit

command trail log --session-start --cwd "$PWD" >/dev/null 2>&1 &!
`
