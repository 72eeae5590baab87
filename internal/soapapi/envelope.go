package soapapi

import (
	"encoding/xml"

	"musicstream/internal/models"
)

const (
	// EnvelopeNS is the SOAP 1.1 envelope namespace.
	EnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	// TargetNS is the namespace of the catalogue operations.
	TargetNS = "http://musicstream.local/soap"
)

type requestEnvelope struct {
	XMLName xml.Name `xml:"http://schemas.xmlsoap.org/soap/envelope/ Envelope"`
	Body    struct {
		Inner []byte `xml:",innerxml"`
	} `xml:"http://schemas.xmlsoap.org/soap/envelope/ Body"`
}

// request is the union of every operation's parameters. Absent elements stay nil.
type request struct {
	ID         *string  `xml:"id"`
	Name       *string  `xml:"name"`
	Age        *string  `xml:"age"`
	Artist     *string  `xml:"artist"`
	OwnerID    *string  `xml:"ownerId"`
	UserID     *string  `xml:"userId"`
	PlaylistID *string  `xml:"playlistId"`
	SongID     *string  `xml:"songId"`
	SongIDs    []string `xml:"songIds>songId"`
}

type responseEnvelope struct {
	XMLName xml.Name `xml:"soap:Envelope"`
	SoapNS  string   `xml:"xmlns:soap,attr"`
	TNS     string   `xml:"xmlns:tns,attr,omitempty"`
	Body    responseBody
}

type responseBody struct {
	XMLName  xml.Name `xml:"soap:Body"`
	Response *response
	Fault    *fault
}

type fault struct {
	XMLName xml.Name `xml:"soap:Fault"`
	Code    string   `xml:"faultcode"`
	String  string   `xml:"faultstring"`
}

// response is named tns:{operation}Response at marshal time.
type response struct {
	XMLName   xml.Name
	User      *userXML     `xml:"user,omitempty"`
	Users     *userList    `xml:"users,omitempty"`
	Song      *songXML     `xml:"song,omitempty"`
	Songs     *songList    `xml:"songs,omitempty"`
	Playlist  *playlistXML `xml:"playlist,omitempty"`
	Playlists *playlistSet `xml:"playlists,omitempty"`
	Success   *bool        `xml:"success,omitempty"`
}

type userXML struct {
	ID   string `xml:"id"`
	Name string `xml:"name"`
	Age  int    `xml:"age"`
}

type userList struct {
	Items []userXML `xml:"user"`
}

type songXML struct {
	ID     string `xml:"id"`
	Name   string `xml:"name"`
	Artist string `xml:"artist"`
}

type songList struct {
	Items []songXML `xml:"song"`
}

type playlistXML struct {
	ID      string  `xml:"id"`
	Name    string  `xml:"name"`
	OwnerID string  `xml:"ownerId"`
	SongIDs songIDs `xml:"songIds"`
}

type songIDs struct {
	Items []string `xml:"songId"`
}

type playlistSet struct {
	Items []playlistXML `xml:"playlist"`
}

func toUserXML(u models.User) *userXML {
	return &userXML{ID: u.ID, Name: u.Name, Age: u.Age}
}

func toUserList(users []models.User) *userList {
	out := &userList{Items: make([]userXML, 0, len(users))}
	for _, u := range users {
		out.Items = append(out.Items, *toUserXML(u))
	}
	return out
}

func toSongXML(s models.Song) *songXML {
	return &songXML{ID: s.ID, Name: s.Name, Artist: s.Artist}
}

func toSongList(songs []models.Song) *songList {
	out := &songList{Items: make([]songXML, 0, len(songs))}
	for _, s := range songs {
		out.Items = append(out.Items, *toSongXML(s))
	}
	return out
}

func toPlaylistXML(p models.Playlist) *playlistXML {
	return &playlistXML{ID: p.ID, Name: p.Name, OwnerID: p.OwnerID, SongIDs: songIDs{Items: p.SongIDs}}
}

func toPlaylistSet(playlists []models.Playlist) *playlistSet {
	out := &playlistSet{Items: make([]playlistXML, 0, len(playlists))}
	for _, p := range playlists {
		out.Items = append(out.Items, *toPlaylistXML(p))
	}
	return out
}
