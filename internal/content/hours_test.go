package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupHours(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	groups := GroupHours(s.Business.Hours)
	require.Len(t, groups, 3)
	require.Equal(t, "Monday-Friday", groups[0].Label())
	require.Equal(t, "9:00 AM - 7:00 PM", groups[0].Range())
	require.Equal(t, "Saturday", groups[1].Label())
	require.Equal(t, "9:00 AM - 4:00 PM", groups[1].Range())
	require.Equal(t, "Sunday", groups[2].Label())
	require.Equal(t, "10:00 AM - 3:00 PM", groups[2].Range())
}

func TestGroupHours_ClosedDaySplits(t *testing.T) {
	groups := GroupHours([]DayHours{
		{Day: "Monday", Opens: "08:00", Closes: "12:00"},
		{Day: "Tuesday", Closed: true},
		{Day: "Wednesday", Opens: "08:00", Closes: "12:00"},
	})
	require.Len(t, groups, 2)
	require.Equal(t, []string{"Monday"}, groups[0].Days)
	require.Equal(t, []string{"Wednesday"}, groups[1].Days)
	require.Equal(t, "8:00 AM - 12:00 PM", groups[0].Range())

	require.Empty(t, GroupHours(nil))
}
