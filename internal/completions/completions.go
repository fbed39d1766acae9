package completions

import (
	"fmt"
	"strings"
)

// Bash generates bash completion script
func Bash() string {
	return `# gestor bash completion script
# Add to ~/.bashrc: eval "$(gestor completions bash)"

_gestor_completions() {
    local cur prev commands tags
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    commands="show process tags completions help"

    case "${prev}" in
        gestor)
            COMPREPLY=( $(compgen -W "${commands}" -- "${cur}") )
            return 0
            ;;
        -s|--source|-t|--target)
            COMPREPLY=( $(compgen -d -- "${cur}") )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "tree yaml" -- "${cur}") )
            return 0
            ;;
        show|process)
            # Tags found under the current directory
            if command -v gestor &> /dev/null; then
                tags=$(gestor tags 2>/dev/null | grep -E '^\s+\S+' | awk '{print $1}')
            fi
            COMPREPLY=( $(compgen -W "${tags}" -- "${cur}") )
            return 0
            ;;
        completions)
            COMPREPLY=( $(compgen -W "bash zsh fish" -- "${cur}") )
            return 0
            ;;
    esac

    case "${COMP_WORDS[1]}" in
        show)
            COMPREPLY=( $(compgen -W "--source -s --dry-run --format" -- "${cur}") )
            return 0
            ;;
        process)
            COMPREPLY=( $(compgen -W "--source -s --target -t --dry-run --format" -- "${cur}") )
            return 0
            ;;
        tags)
            COMPREPLY=( $(compgen -W "--source -s" -- "${cur}") )
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "${commands}" -- "${cur}") )
}

complete -F _gestor_completions gestor
`
}

// Zsh generates zsh completion script
func Zsh() string {
	return `#compdef gestor
# gestor zsh completion script
# Add to ~/.zshrc: eval "$(gestor completions zsh)"

_gestor() {
    local -a commands tags

    commands=(
        'show:Show how files will be organized'
        'process:Organize and move files'
        'tags:List tags found in file names'
        'completions:Generate shell completions'
        'help:Show help'
    )

    if (( $+commands[gestor] )); then
        tags=(${(f)"$(gestor tags 2>/dev/null | grep -E '^\s+\S+' | awk '{print $1}')"})
    fi

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case $state in
        command)
            _describe -t commands 'gestor commands' commands
            ;;
        args)
            case $words[2] in
                show)
                    _arguments \
                        '2:tag:($tags)' \
                        {-s,--source}'[source directory]:directory:_files -/' \
                        '--dry-run[simulate the process]' \
                        '--format[preview format]:format:(tree yaml)'
                    ;;
                process)
                    _arguments \
                        '2:tag:($tags)' \
                        {-s,--source}'[source directory]:directory:_files -/' \
                        {-t,--target}'[target directory]:directory:_files -/' \
                        '--dry-run[simulate the process]' \
                        '--format[preview format]:format:(tree yaml)'
                    ;;
                tags)
                    _arguments {-s,--source}'[source directory]:directory:_files -/'
                    ;;
                completions)
                    _values 'shells' 'bash' 'zsh' 'fish'
                    ;;
            esac
            ;;
    esac
}

_gestor "$@"
`
}

// Fish generates fish completion script
func Fish() string {
	return `# gestor fish completion script
# Add to ~/.config/fish/completions/gestor.fish

# Disable file completion by default
complete -c gestor -f

# Commands
complete -c gestor -n "__fish_use_subcommand" -a "show" -d "Show how files will be organized"
complete -c gestor -n "__fish_use_subcommand" -a "process" -d "Organize and move files"
complete -c gestor -n "__fish_use_subcommand" -a "tags" -d "List tags found in file names"
complete -c gestor -n "__fish_use_subcommand" -a "completions" -d "Generate shell completions"
complete -c gestor -n "__fish_use_subcommand" -a "help" -d "Show help"

# Helper function to get tags
function __gestor_tags
    gestor tags 2>/dev/null | string match -r '^\s+\S+' | string trim | string split -f1 ' '
end

complete -c gestor -n "__fish_seen_subcommand_from show process" -a "(__gestor_tags)" -d "Tag"

# Flags
complete -c gestor -n "__fish_seen_subcommand_from show process tags" -s s -l source -r -a "(__fish_complete_directories)" -d "Source directory"
complete -c gestor -n "__fish_seen_subcommand_from process" -s t -l target -r -a "(__fish_complete_directories)" -d "Target directory"
complete -c gestor -n "__fish_seen_subcommand_from show process" -l dry-run -d "Simulate the process"
complete -c gestor -n "__fish_seen_subcommand_from show process" -l format -r -a "tree yaml" -d "Preview format"

complete -c gestor -n "__fish_seen_subcommand_from completions" -a "bash zsh fish" -d "Shell"
`
}

// Generate returns the completion script for the given shell
func Generate(shell string) (string, error) {
	switch strings.ToLower(shell) {
	case "bash":
		return Bash(), nil
	case "zsh":
		return Zsh(), nil
	case "fish":
		return Fish(), nil
	default:
		return "", fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
	}
}
