package helpers

import (
	"github.com/cheggaaa/pb/v3"
	"io"
	"time"
)

func NewProgressBar(w io.Writer, count int, msg string) (bar *pb.ProgressBar) {
	var progressTemp = `{{string . "prefix" | blue}} {{ bar . "[" "=" (cycle . "↖" "↗" "↘" "↙" ">" ">" ">") "-" "]"}} {{counters . | blue}}   {{string . "duration" | green}} {{etime . | green}} {{string . "end"}}`

	bar = pb.New(count)
	bar.SetTemplate(pb.ProgressBarTemplate(progressTemp)).
		Set("prefix", msg).
		Set("end", "\n").
		Set("duration", "duration:").
		SetRefreshRate(time.Second * 10).
		SetWidth(120).
		SetWriter(w).
		Start()

	return bar
}
