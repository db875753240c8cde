package realtime

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hospital/hospital/controllers"
	"hospital/hospital/middlewares"
	"hospital/hospital/sources/psql/dao"
	"hospital/hospital/sources/psql/models"
	"hospital/hospital/sources/psql/testdb"
	"hospital/hospital/utils/types"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sioEnv struct {
	server  *httptest.Server
	doctor  types.Principal
	patient types.Principal
}

func newSioEnv(t *testing.T) *sioEnv {
	t.Helper()
	db := testdb.Open(t)
	doctor := models.Doctor{Name: "Rao", Email: "rao@example.com", Specialization: "ENT"}
	require.NoError(t, db.Create(&doctor).Error)
	patient := models.Patient{Name: "Asha", Email: "asha@example.com"}
	require.NoError(t, db.Create(&patient).Error)
	consultation := models.Consultation{DoctorID: doctor.ID, PatientID: patient.ID, Slot: "A", Reason: "cough", Status: models.StatusAccepted}
	require.NoError(t, db.Create(&consultation).Error)
	require.NoError(t, db.Create(&models.Chat{ID: 42, ConsultationID: consultation.ID, DoctorID: doctor.ID, PatientID: patient.ID}).Error)

	chats := controllers.NewChatController(dao.NewChatDAO(db), dao.NewMessageDAO(db), dao.NewConsultationDAO(db))
	g := NewGateway(chats, testSecret)
	sio := g.NewSocketIOServer()
	srv := httptest.NewServer(sio.ServeHandler(nil))
	t.Cleanup(func() {
		g.Close()
		sio.Close(nil)
		srv.Close()
	})
	return &sioEnv{
		server:  srv,
		doctor:  types.Principal{UserID: doctor.ID, Role: types.RoleDoctor},
		patient: types.Principal{UserID: patient.ID, Role: types.RolePatient},
	}
}

// sioConn speaks the Engine.IO v4 / Socket.IO v5 text protocol that the
// socket.io v4 JavaScript client uses.
type sioConn struct {
	t    *testing.T
	conn *websocket.Conn
}

func (e *sioEnv) open(t *testing.T) *sioConn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(e.server.URL, "http") + "/socket.io/?EIO=4&transport=websocket"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.CloseNow() })

	c := &sioConn{t: t, conn: conn}
	open := c.read()
	require.True(t, strings.HasPrefix(open, "0{"), "open packet: %q", open)
	assert.Contains(t, open, `"sid"`)
	return c
}

func (c *sioConn) write(frame string) {
	c.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(c.t, c.conn.Write(ctx, websocket.MessageText, []byte(frame)))
}

// read returns the next frame, answering engine pings on the way.
func (c *sioConn) read() string {
	c.t.Helper()
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, data, err := c.conn.Read(ctx)
		cancel()
		require.NoError(c.t, err)
		if string(data) == "2" {
			c.write("3")
			continue
		}
		return string(data)
	}
}

func (c *sioConn) connect(token string) string {
	c.t.Helper()
	auth, err := json.Marshal(map[string]string{"token": token})
	require.NoError(c.t, err)
	c.write("40" + string(auth))
	return c.read()
}

func (c *sioConn) emit(event string, data any) {
	c.t.Helper()
	raw, err := json.Marshal([]any{event, data})
	require.NoError(c.t, err)
	c.write("42" + string(raw))
}

func (c *sioConn) expect(event string) json.RawMessage {
	c.t.Helper()
	frame := c.read()
	require.True(c.t, strings.HasPrefix(frame, "42"), "frame: %q", frame)
	var args []json.RawMessage
	require.NoError(c.t, json.Unmarshal([]byte(frame[2:]), &args))
	require.Len(c.t, args, 2)
	var name string
	require.NoError(c.t, json.Unmarshal(args[0], &name))
	require.Equal(c.t, event, name, "payload: %s", args[1])
	return args[1]
}

func token(t *testing.T, p types.Principal) string {
	t.Helper()
	tok, err := middlewares.IssueToken(testSecret, time.Hour, p)
	require.NoError(t, err)
	return tok
}

func TestSocketIO_PollingHandshakeIsV4(t *testing.T) {
	e := newSioEnv(t)
	res, err := http.Get(e.server.URL + "/socket.io/?EIO=4&transport=polling")
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, strings.HasPrefix(string(body), "0{"), "body: %q", body)
	assert.Contains(t, string(body), `"sid":`)
}

func TestSocketIO_JoinAndSend(t *testing.T) {
	e := newSioEnv(t)
	doctor := e.open(t)
	patient := e.open(t)

	assert.True(t, strings.HasPrefix(doctor.connect(token(t, e.doctor)), "40{"))
	assert.True(t, strings.HasPrefix(patient.connect(token(t, e.patient)), "40{"))

	doctor.emit(EventJoinChat, 42)
	var joined JoinedPayload
	require.NoError(t, json.Unmarshal(doctor.expect(EventJoinedChat), &joined))
	assert.Equal(t, uint(42), joined.ChatID)

	patient.emit(EventJoinChat, map[string]any{"chatId": "42"})
	patient.expect(EventJoinedChat)

	patient.emit(EventSendMessage, map[string]any{"chatId": 42, "senderId": e.patient.UserID, "message": "hello over socket.io"})
	for _, c := range []*sioConn{doctor, patient} {
		var msg models.Message
		require.NoError(t, json.Unmarshal(c.expect(EventReceiveMessage), &msg))
		assert.Equal(t, "hello over socket.io", msg.Message)
		assert.Equal(t, e.patient.UserID, msg.SenderID)
	}

	doctor.emit(EventSendMessage, map[string]any{"chatId": 42, "message": ""})
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal(doctor.expect(EventError), &payload))
	assert.Equal(t, EventSendMessage, payload.Event)
}

func TestSocketIO_RejectsBadToken(t *testing.T) {
	e := newSioEnv(t)
	c := e.open(t)
	reply := c.connect("not-a-jwt")
	assert.True(t, strings.HasPrefix(reply, "44"), "reply: %q", reply)
	assert.Contains(t, reply, "unauthorized")
}
