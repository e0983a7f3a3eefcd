package commands

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"clawdlink/internal/domain"
)

// prefs: view and edit the delivery preference profile.
func prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "View and edit delivery preferences",
	}
	cmd.AddCommand(
		prefsShowCmd(), prefsQuietCmd(), prefsBatchCmd(),
		prefsFriendCmd(), prefsContextCmd("allow"), prefsContextCmd("mute"),
		prefsTimezoneCmd(),
	)
	return cmd
}

// updatePrefs loads the profile, applies fn, and saves the result.
func updatePrefs(fn func(*domain.PreferenceProfile) error) error {
	p, err := wire.Prefs.LoadPreferences()
	if err != nil {
		return err
	}
	if err := fn(&p); err != nil {
		return err
	}
	return wire.Prefs.SavePreferences(p)
}

func prefsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current preference profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := wire.Prefs.LoadPreferences()
			if err != nil {
				return err
			}

			if p.QuietHours.Enabled {
				urgentNote := ""
				if p.QuietHours.AllowUrgent {
					urgentNote = " (urgent delivered)"
				}
				fmt.Printf("quiet hours: %s-%s%s\n", p.QuietHours.Start, p.QuietHours.End, urgentNote)
			} else {
				fmt.Println("quiet hours: off")
			}

			if p.BatchDelivery.Enabled {
				times := make([]string, len(p.BatchDelivery.Times))
				for i, t := range p.BatchDelivery.Times {
					times[i] = t.String()
				}
				fmt.Printf("batch delivery: %s\n", strings.Join(times, ", "))
			} else {
				fmt.Println("batch delivery: off")
			}

			for name, o := range p.Friends {
				var parts []string
				if o.Priority != "" {
					parts = append(parts, "priority="+string(o.Priority))
				}
				if o.AlwaysDeliver {
					parts = append(parts, "always-deliver")
				}
				if o.Tone != "" {
					parts = append(parts, "tone="+o.Tone)
				}
				fmt.Printf("friend %s: %s\n", name, strings.Join(parts, " "))
			}

			if len(p.AllowedContexts) > 0 {
				fmt.Printf("allowed contexts: %s\n", strings.Join(p.AllowedContexts, ", "))
			}
			if len(p.MutedContexts) > 0 {
				fmt.Printf("muted contexts: %s\n", strings.Join(p.MutedContexts, ", "))
			}
			if p.Timezone != "" {
				fmt.Printf("timezone: %s\n", p.Timezone)
			}
			return nil
		},
	}
}

func prefsQuietCmd() *cobra.Command {
	var (
		start, end  string
		allowUrgent bool
		off         bool
	)
	cmd := &cobra.Command{
		Use:   "quiet",
		Short: "Configure the quiet-hours window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return updatePrefs(func(p *domain.PreferenceProfile) error {
				if off {
					p.QuietHours.Enabled = false
					return nil
				}
				s, err := domain.ParseClockTime(start)
				if err != nil {
					return err
				}
				e, err := domain.ParseClockTime(end)
				if err != nil {
					return err
				}
				p.QuietHours = domain.QuietHours{
					Enabled:     true,
					Start:       s,
					End:         e,
					AllowUrgent: allowUrgent,
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&start, "start", "22:00", "window start (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "08:00", "window end (HH:MM)")
	cmd.Flags().BoolVar(&allowUrgent, "urgent-ok", false, "deliver urgent messages during quiet hours")
	cmd.Flags().BoolVar(&off, "off", false, "disable quiet hours")
	return cmd
}

func prefsBatchCmd() *cobra.Command {
	var (
		at  []string
		off bool
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Configure batch delivery times",
		RunE: func(cmd *cobra.Command, args []string) error {
			return updatePrefs(func(p *domain.PreferenceProfile) error {
				if off {
					p.BatchDelivery.Enabled = false
					return nil
				}
				if len(at) == 0 {
					return fmt.Errorf("at least one --at time required")
				}
				times := make([]domain.ClockTime, 0, len(at))
				for _, s := range at {
					t, err := domain.ParseClockTime(s)
					if err != nil {
						return err
					}
					times = append(times, t)
				}
				p.BatchDelivery = domain.BatchDelivery{Enabled: true, Times: times}
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&at, "at", nil, "batch time (HH:MM), repeatable")
	cmd.Flags().BoolVar(&off, "off", false, "disable batch delivery")
	return cmd
}

func prefsFriendCmd() *cobra.Command {
	var (
		priority      string
		alwaysDeliver bool
		tone          string
		clear         bool
	)
	cmd := &cobra.Command{
		Use:   "friend <name>",
		Short: "Set per-friend delivery overrides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updatePrefs(func(p *domain.PreferenceProfile) error {
				if p.Friends == nil {
					p.Friends = map[string]domain.FriendOverride{}
				}
				if clear {
					delete(p.Friends, args[0])
					return nil
				}
				switch domain.Priority(priority) {
				case domain.PriorityNormal, domain.PriorityHigh:
				default:
					return fmt.Errorf("priority must be %q or %q", domain.PriorityNormal, domain.PriorityHigh)
				}
				p.Friends[args[0]] = domain.FriendOverride{
					Priority:      domain.Priority(priority),
					AlwaysDeliver: alwaysDeliver,
					Tone:          tone,
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&priority, "priority", string(domain.PriorityNormal), "delivery priority (normal|high)")
	cmd.Flags().BoolVar(&alwaysDeliver, "always-deliver", false, "bypass every hold rule for this friend")
	cmd.Flags().StringVar(&tone, "tone", "", "custom notification tone")
	cmd.Flags().BoolVar(&clear, "clear", false, "remove the override")
	return cmd
}

// prefsContextCmd builds the allow/mute context editors; the two differ only
// in which list they touch.
func prefsContextCmd(verb string) *cobra.Command {
	var remove bool
	cmd := &cobra.Command{
		Use:   verb + " <context>",
		Short: verb + " a message context tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updatePrefs(func(p *domain.PreferenceProfile) error {
				list := &p.AllowedContexts
				if verb == "mute" {
					list = &p.MutedContexts
				}
				if remove {
					*list = slices.DeleteFunc(*list, func(s string) bool { return s == args[0] })
					return nil
				}
				if !slices.Contains(*list, args[0]) {
					*list = append(*list, args[0])
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "remove the context from the list")
	return cmd
}

func prefsTimezoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timezone <zone>",
		Short: "Set the timezone preference rules are evaluated in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := time.LoadLocation(args[0]); err != nil {
				return fmt.Errorf("unknown timezone %q: %w", args[0], err)
			}
			return updatePrefs(func(p *domain.PreferenceProfile) error {
				p.Timezone = args[0]
				return nil
			})
		},
	}
}
