package player

import (
	"fmt"
	"math"

	"github.com/grafov/m3u8"
	"github.com/ixugo/goddd/pkg/reason"
)

// PlaylistInput 回放列表参数
type PlaylistInput struct {
	IncidentID     string
	ClipSeconds    int
	SegmentSeconds int
	Token          string
}

// Playlist 生成事件片段的 VOD m3u8
// 片段地址指向流媒体服务的切片，播放器只负责按列表拉取
func Playlist(in PlaylistInput) (string, error) {
	if in.IncidentID == "" {
		return "", reason.ErrBadRequest.Withf("incident id is required")
	}
	clip := in.ClipSeconds
	if clip <= 0 {
		clip = DefaultClipSeconds
	}
	seg := in.SegmentSeconds
	if seg <= 0 || seg > clip {
		seg = clip
	}

	count := int(math.Ceil(float64(clip) / float64(seg)))
	pl, err := m3u8.NewMediaPlaylist(0, uint(count))
	if err != nil {
		return "", reason.ErrServer.SetMsg(err.Error())
	}
	pl.MediaType = m3u8.VOD

	remain := clip
	for i := range count {
		d := min(seg, remain)
		remain -= d

		uri := fmt.Sprintf("/static/incidents/%s/%06d.ts", in.IncidentID, i)
		if in.Token != "" {
			uri += "?token=" + in.Token
		}
		if err := pl.Append(uri, float64(d), ""); err != nil {
			return "", reason.ErrServer.SetMsg(err.Error())
		}
	}
	pl.Close()
	return pl.String(), nil
}
